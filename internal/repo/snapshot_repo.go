// Package repo implements the relational persistence layer for the ledger,
// backed by GORM. This file provides repository functions for the
// SnapshotRecord model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no normalization or business logic, only
// storing and fetching encoded snapshot payloads.
//
// Error semantics:
//   - When no row exists for the key, functions return ErrNotFound.
//   - On DB errors (connectivity issues, missing table, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience.
var ErrNotFound = gorm.ErrRecordNotFound

// GetSnapshot fetches the snapshot row stored under key. If the row does not
// exist it returns ErrNotFound.
func GetSnapshot(ctx context.Context, db *gorm.DB, key string) (*domain.SnapshotRecord, error) {
	var rec domain.SnapshotRecord
	err := db.WithContext(ctx).
		Where("id = ?", key).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SaveSnapshot inserts or replaces the snapshot row stored under key with
// payload. The full payload is written on every call.
func SaveSnapshot(ctx context.Context, db *gorm.DB, key string, payload []byte) error {
	rec := &domain.SnapshotRecord{
		ID:        key,
		Payload:   string(payload),
		Size:      len(payload),
		UpdatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "size", "updated_at"}),
		}).
		Create(rec).Error
}
