package domain

import "time"

// SnapshotKey is the primary key of the single live snapshot row/document.
const SnapshotKey = "main"

// SnapshotRecord stores an encoded Snapshot in the relational backend. The
// whole document lives in one row; there is no per-entity schema.
//
// Fields:
//   - ID: document key (always SnapshotKey for the live snapshot).
//   - Payload: canonical JSON encoding of the Snapshot.
//   - Size: payload length in bytes, kept for quick inspection.
//   - UpdatedAt: time of the last save, managed by GORM.
type SnapshotRecord struct {
	ID        string    `gorm:"type:varchar(32);primaryKey"`
	Payload   string    `gorm:"type:text;not null"`
	Size      int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName returns the database table name for SnapshotRecord.
func (SnapshotRecord) TableName() string { return "ledger_snapshots" }
