package store

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/cvelens/cvelens/cvelens/db/store/model"
)

// GetLastSync returns the incremental-sync watermark, or nil when no sync has
// ever completed.
func (s *store) GetLastSync() (*time.Time, error) {
	value, err := s.getState(model.LastSyncKey)
	if err != nil || value == "" {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("unable to parse last sync timestamp (%q): %w", value, err)
	}
	return &t, nil
}

// SetLastSync advances the incremental-sync watermark. Callers must only do
// this after a sync run that returned without a fatal error.
func (s *store) SetLastSync(t time.Time) error {
	return s.setState(model.LastSyncKey, t.UTC().Format(time.RFC3339))
}

func (s *store) getState(key string) (string, error) {
	var m model.StateModel
	err := s.db.Where("key = ?", key).First(&m).Error
	if gorm.IsRecordNotFoundError(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("unable to query state %q: %w", key, err)
	}
	return m.Value, nil
}

func (s *store) setState(key, value string) error {
	var existing model.StateModel
	err := s.db.Where("key = ?", key).First(&existing).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		m := model.StateModel{Key: key, Value: value}
		if err := s.db.Create(&m).Error; err != nil {
			return fmt.Errorf("unable to add state %q: %w", key, err)
		}
	case err != nil:
		return fmt.Errorf("unable to query state %q: %w", key, err)
	default:
		result := s.db.Model(&model.StateModel{}).Where("key = ?", key).Update("value", value)
		if result.Error != nil {
			return fmt.Errorf("unable to update state %q: %w", key, result.Error)
		}
	}
	return nil
}
