package db

import (
	"strings"
	"time"
)

// closedStatuses are the tracker statuses considered terminal. Anything else,
// including an unset status, counts as open.
var closedStatuses = map[string]struct{}{
	"done":      {},
	"closed":    {},
	"resolved":  {},
	"cancelled": {},
}

// Tracker is a single issue-tracker record representing remediation work for
// a CVE in a specific project. Trackers are mutated in place on every re-sync
// (idempotent upsert by ExternalKey) and never deleted by the sync path.
type Tracker struct {
	ID            uint
	ExternalKey   string
	SourceType    string
	ProjectID     uint
	CVEID         *uint
	Summary       string
	Status        string
	Resolution    string
	Priority      string
	Severity      string
	Assignee      string
	Reporter      string
	CreatedDate   *time.Time
	UpdatedDate   *time.Time
	ResolvedDate  *time.Time
	DueDate       *time.Time
	SLADate       *time.Time
	SLABreach     bool
	ClosureReason string
	LastSyncedAt  *time.Time
}

// IsOpen indicates whether the tracker still represents outstanding work.
func (t Tracker) IsOpen() bool {
	_, closed := closedStatuses[strings.ToLower(t.Status)]
	return !closed
}

// DaysOpen reports how many days the tracker has been (or was) open as of the
// given time. The second return value is false when the tracker has no
// created date.
func (t Tracker) DaysOpen(asOf time.Time) (int, bool) {
	if t.CreatedDate == nil {
		return 0, false
	}
	end := asOf
	if t.ResolvedDate != nil {
		end = *t.ResolvedDate
	}
	return int(end.Sub(*t.CreatedDate).Hours() / 24), true
}
