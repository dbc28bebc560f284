package models

import "time"

// Record is one key of the shared key-value store.
// Revision increases by one on every successful write of the key.
type Record struct {
	Key       string `gorm:"column:record_key;primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	Revision  int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
