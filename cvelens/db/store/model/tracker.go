package model

import (
	"time"

	"github.com/cvelens/cvelens/cvelens/db"
)

const TrackerTableName = "trackers"

type TrackerModel struct {
	ID            uint       `gorm:"column:id;primary_key"`
	ExternalKey   string     `gorm:"column:external_key;unique_index;not null"`
	SourceType    string     `gorm:"column:source_type"`
	ProjectID     uint       `gorm:"column:project_id;index;not null"`
	CVEID         *uint      `gorm:"column:cve_id;index"`
	Summary       string     `gorm:"column:summary"`
	Status        string     `gorm:"column:status"`
	Resolution    string     `gorm:"column:resolution"`
	Priority      string     `gorm:"column:priority"`
	Severity      string     `gorm:"column:severity"`
	Assignee      string     `gorm:"column:assignee"`
	Reporter      string     `gorm:"column:reporter"`
	CreatedDate   *time.Time `gorm:"column:created_date"`
	UpdatedDate   *time.Time `gorm:"column:updated_date"`
	ResolvedDate  *time.Time `gorm:"column:resolved_date"`
	DueDate       *time.Time `gorm:"column:due_date"`
	SLADate       *time.Time `gorm:"column:sla_date"`
	SLABreach     bool       `gorm:"column:sla_breach;not null"`
	ClosureReason string     `gorm:"column:closure_reason"`
	LastSyncedAt  *time.Time `gorm:"column:last_synced_at"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewTrackerModel(tracker db.Tracker) TrackerModel {
	return TrackerModel{
		ID:            tracker.ID,
		ExternalKey:   tracker.ExternalKey,
		SourceType:    tracker.SourceType,
		ProjectID:     tracker.ProjectID,
		CVEID:         tracker.CVEID,
		Summary:       tracker.Summary,
		Status:        tracker.Status,
		Resolution:    tracker.Resolution,
		Priority:      tracker.Priority,
		Severity:      tracker.Severity,
		Assignee:      tracker.Assignee,
		Reporter:      tracker.Reporter,
		CreatedDate:   tracker.CreatedDate,
		UpdatedDate:   tracker.UpdatedDate,
		ResolvedDate:  tracker.ResolvedDate,
		DueDate:       tracker.DueDate,
		SLADate:       tracker.SLADate,
		SLABreach:     tracker.SLABreach,
		ClosureReason: tracker.ClosureReason,
		LastSyncedAt:  tracker.LastSyncedAt,
	}
}

func (TrackerModel) TableName() string {
	return TrackerTableName
}

func (m TrackerModel) Inflate() db.Tracker {
	return db.Tracker{
		ID:            m.ID,
		ExternalKey:   m.ExternalKey,
		SourceType:    m.SourceType,
		ProjectID:     m.ProjectID,
		CVEID:         m.CVEID,
		Summary:       m.Summary,
		Status:        m.Status,
		Resolution:    m.Resolution,
		Priority:      m.Priority,
		Severity:      m.Severity,
		Assignee:      m.Assignee,
		Reporter:      m.Reporter,
		CreatedDate:   m.CreatedDate,
		UpdatedDate:   m.UpdatedDate,
		ResolvedDate:  m.ResolvedDate,
		DueDate:       m.DueDate,
		SLADate:       m.SLADate,
		SLABreach:     m.SLABreach,
		ClosureReason: m.ClosureReason,
		LastSyncedAt:  m.LastSyncedAt,
	}
}
