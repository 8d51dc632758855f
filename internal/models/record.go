package models

import "time"

// DraftRecord persists a serialized draft blob keyed by a storage key,
// mirroring the browser tool's local-storage slot.
type DraftRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex;not null"`
	Payload   string `gorm:"not null"` // draft JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
