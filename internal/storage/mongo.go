package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

// MongoBackend stores the snapshot as one flat document whose _id is
// domain.SnapshotKey. The remaining fields mirror the JSON snapshot.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// DialMongo connects to uri and verifies the primary is reachable within
// timeout. A failed ping disconnects the client before returning.
func DialMongo(ctx context.Context, uri, database, collection string, timeout time.Duration) (*MongoBackend, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (m *MongoBackend) Name() string { return "mongodb" }

func (m *MongoBackend) Load(ctx context.Context) ([]byte, error) {
	var doc bson.D
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: domain.SnapshotKey}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func (m *MongoBackend) Save(ctx context.Context, payload []byte) error {
	doc, err := toDocument(payload)
	if err != nil {
		return err
	}
	_, err = m.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: domain.SnapshotKey}},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *MongoBackend) Close(ctx context.Context) error { return m.client.Disconnect(ctx) }

// toDocument converts a JSON payload to a BSON document keyed by
// domain.SnapshotKey. Relaxed extended JSON keeps integers as int32/int64.
func toDocument(payload []byte) (bson.D, error) {
	var body bson.D
	if err := bson.UnmarshalExtJSON(payload, false, &body); err != nil {
		return nil, err
	}
	doc := make(bson.D, 0, len(body)+1)
	doc = append(doc, bson.E{Key: "_id", Value: domain.SnapshotKey})
	for _, e := range body {
		if e.Key != "_id" {
			doc = append(doc, e)
		}
	}
	return doc, nil
}

// fromDocument drops the _id field and renders the rest as relaxed JSON.
func fromDocument(doc bson.D) ([]byte, error) {
	body := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key != "_id" {
			body = append(body, e)
		}
	}
	return bson.MarshalExtJSON(body, false, false)
}
