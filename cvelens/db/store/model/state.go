package model

import "time"

const (
	StateTableName = "state"

	// LastSyncKey is the state row holding the incremental-sync watermark
	LastSyncKey = "last_sync_datetime"
)

// StateModel is a key-value row for application state (e.g. the sync watermark).
type StateModel struct {
	Key       string `gorm:"column:key;primary_key"`
	Value     string `gorm:"column:value;type:text"`
	UpdatedAt time.Time
}

func (StateModel) TableName() string {
	return StateTableName
}
