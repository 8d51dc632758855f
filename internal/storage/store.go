// Package storage persists serialized drafts keyed by name, one row per
// draft slot.
package storage

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/garage-estimates/internal/draft"
	"github.com/diewo77/garage-estimates/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load returns the stored draft for key, normalized. The second return is
// false when no usable draft exists: missing row, unreadable row, or a
// payload that is not JSON at all. Structurally odd but parseable payloads
// are absorbed by normalization rather than reported.
func (s *Store) Load(key string) (models.GarageEstimateDraft, bool) {
	var rec models.DraftRecord
	if err := s.db.Where("key = ?", key).First(&rec).Error; err != nil {
		// unreadable storage behaves like empty storage
		return models.GarageEstimateDraft{}, false
	}

	d, err := draft.ParseDraftJSON([]byte(rec.Payload))
	if err != nil {
		return models.GarageEstimateDraft{}, false
	}
	return d, true
}

// Save upserts the draft under key as a JSON blob. A single ON CONFLICT
// statement, so two writers racing on the same key cannot trip the unique
// index.
func (s *Store) Save(key string, d models.GarageEstimateDraft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	rec := models.DraftRecord{Key: key, Payload: string(payload)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Clear removes the stored draft for key. Clearing a missing key is not an
// error.
func (s *Store) Clear(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&models.DraftRecord{}).Error; err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
