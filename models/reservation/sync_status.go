package reservation

import (
	"time"
)

// SyncStatusID is the fixed primary key of the singleton row.
const SyncStatusID uint = 1

// SyncStatus records when the last reconciliation pass completed.
// Exactly one row exists; it is overwritten wholesale at the end of
// every successful pass, including passes that changed nothing.
type SyncStatus struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	LastSyncTime time.Time `gorm:"not null" json:"last_sync_time"`
}

// TableName sets the table name for the SyncStatus model
func (SyncStatus) TableName() string {
	return "sync_statuses"
}
