package source

import (
	"errors"
	"time"
)

// ErrNoProjectKeys indicates a fetch was attempted without scoping to any
// projects. Unscoped queries against the external system are disallowed.
var ErrNoProjectKeys = errors.New("project keys are required - cannot fetch without specifying projects")

// FetchFilters enumerates the supported record filters for a fetch. Since is
// optional; nil means a full fetch.
type FetchFilters struct {
	ProjectKeys []string
	Since       *time.Time
}

// ProjectRef identifies a project visible to the adapter's credentials.
type ProjectRef struct {
	Key  string
	Name string
}

// Source is a single external tracker system. Implementations paginate
// internally and surface connectivity errors through the returned iterator;
// a page-level failure is fatal to the whole fetch (there is no partial-page
// retry).
type Source interface {
	// Type is the unique identifier for this source kind (e.g. "jira").
	Type() string

	// DisplayName is the human-readable name for this source.
	DisplayName() string

	// Check probes connectivity with the configured credentials, returning
	// success and a human-readable message.
	Check() (bool, string)

	// FetchTrackers returns a lazy sequence of normalized records matching
	// the filters. It fails fast with ErrNoProjectKeys when no project keys
	// are given. The sequence is not resumable mid-stream; restart by
	// re-invoking with the same or an earlier Since.
	FetchTrackers(filters FetchFilters) (RecordIterator, error)

	// FetchProjects lists all projects visible to the adapter's credentials.
	// Used for discovery, not by the sync path.
	FetchProjects() ([]ProjectRef, error)
}

// RecordIterator walks a fetched record sequence one record at a time,
// bufio.Scanner style. After Next returns false the caller must consult Err
// to distinguish exhaustion from a mid-stream failure.
type RecordIterator interface {
	Next() bool
	Record() Record
	Err() error
}
