package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestGetSnapshot_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	rec, err := GetSnapshot(context.Background(), db, domain.SnapshotKey)
	if err == nil || rec != nil {
		t.Fatalf("expected error without table, got rec=%v err=%v", rec, err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("missing table must not be reported as ErrNotFound")
	}
}

func TestGetSnapshot_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.SnapshotRecord{})
	_, err := GetSnapshot(context.Background(), db, domain.SnapshotKey)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveSnapshot_InsertThenReplace(t *testing.T) {
	db := newTestDB(t, &domain.SnapshotRecord{})
	ctx := context.Background()

	start := time.Now().UTC().Add(-time.Minute)
	if err := SaveSnapshot(ctx, db, domain.SnapshotKey, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveSnapshot(ctx, db, domain.SnapshotKey, []byte(`{"a":2,"b":3}`)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int64
	if err := db.Model(&domain.SnapshotRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row after upsert, got %d", count)
	}

	rec, err := GetSnapshot(ctx, db, domain.SnapshotKey)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if rec.Payload != `{"a":2,"b":3}` || rec.Size != len(rec.Payload) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.UpdatedAt.Before(start) {
		t.Fatalf("UpdatedAt not refreshed: %v", rec.UpdatedAt)
	}
}

func TestSaveSnapshot_KeysAreIndependent(t *testing.T) {
	db := newTestDB(t, &domain.SnapshotRecord{})
	ctx := context.Background()

	if err := SaveSnapshot(ctx, db, "main", []byte("1")); err != nil {
		t.Fatalf("save main: %v", err)
	}
	if err := SaveSnapshot(ctx, db, "other", []byte("2")); err != nil {
		t.Fatalf("save other: %v", err)
	}
	rec, err := GetSnapshot(ctx, db, "main")
	if err != nil || rec.Payload != "1" {
		t.Fatalf("main payload = %+v err=%v", rec, err)
	}
}
