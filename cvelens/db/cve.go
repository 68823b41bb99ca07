package db

import "time"

// CVE is a named vulnerability. Rows are created lazily the first time any
// tracker references the CVE id; most descriptive fields stay empty until
// enriched from another source. The authoritative severity for a CVE is not
// the Severity field but the highest-ranked severity across its trackers
// (see StoreReader.EffectiveSeverity).
type CVE struct {
	ID             uint
	CVEID          string
	URL            string
	Description    string
	Severity       string
	CVSSScore      *float64
	PublishedDate  *time.Time
	IsEmbargoed    bool
	EmbargoEndDate *time.Time
}
