package source

import "time"

// Record is the source-agnostic representation of one external issue. Field
// mapping in adapters is best-effort: optional values that are absent from
// the source are left as zero values / nil rather than failing the record.
type Record struct {
	SourceKey    string
	SourceType   string
	ProjectKey   string
	Summary      string
	Status       string
	Resolution   string
	Priority     string
	Severity     string
	Assignee     string
	Reporter     string
	CreatedDate  *time.Time
	UpdatedDate  *time.Time
	ResolvedDate *time.Time
	DueDate      *time.Time
	SLADate      *time.Time
	CVEIDs       []string
	Labels       []string
	CustomFields map[string]string
}
