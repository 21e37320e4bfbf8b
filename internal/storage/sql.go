package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/repo"
)

// SQLBackend stores the snapshot as a single row of the ledger_snapshots
// table in Postgres or SQLite.
type SQLBackend struct {
	db *gorm.DB
}

// OpenSQL connects to the database at url and migrates the schema. Both the
// connection check and the migration are bounded by timeout.
func OpenSQL(ctx context.Context, url string, timeout time.Duration) (*SQLBackend, error) {
	db, err := repo.Open(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := repo.AutoMigrate(db.WithContext(mctx)); err != nil {
		_ = repo.Close(db)
		return nil, err
	}
	return &SQLBackend{db: db}, nil
}

func (s *SQLBackend) Name() string { return "sql" }

func (s *SQLBackend) Load(ctx context.Context) ([]byte, error) {
	rec, err := repo.GetSnapshot(ctx, s.db, domain.SnapshotKey)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Payload), nil
}

func (s *SQLBackend) Save(ctx context.Context, payload []byte) error {
	return repo.SaveSnapshot(ctx, s.db, domain.SnapshotKey, payload)
}

func (s *SQLBackend) Close(context.Context) error { return repo.Close(s.db) }
