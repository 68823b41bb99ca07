package db

import (
	"time"

	"github.com/cvelens/cvelens/cvelens/severity"
)

// Counts summarizes the number of rows per entity.
type Counts struct {
	Teams    int
	Projects int
	CVEs     int
	Trackers int
}

// StoreReader is the read-side contract for the entity store. All Get*
// lookups return (nil, nil) when no row matches, reserving errors for real
// storage failures.
type StoreReader interface {
	GetTeam(name string) (*Team, error)
	GetProject(key string) (*Project, error)
	UpstreamDependencies(projectKey string) ([]Project, error)
	GetCVE(cveID string) (*CVE, error)
	GetTracker(externalKey string) (*Tracker, error)
	TrackersForCVE(cveID string) ([]Tracker, error)

	// AffectedProjects and AffectedTeams derive the blast radius of a CVE by
	// walking its trackers to their projects (and owning teams), deduplicated
	// by identity. The result is never persisted.
	AffectedProjects(cveID string) ([]Project, error)
	AffectedTeams(cveID string) ([]Team, error)

	// EffectiveSeverity is the highest-ranked severity across the CVE's
	// trackers (unknown/absent severities ignored).
	EffectiveSeverity(cveID string) (severity.Severity, error)

	GetLastSync() (*time.Time, error)
	Counts() (Counts, error)
}

// StoreWriter is the write-side contract for the entity store. Add* calls
// populate the entity's ID on success.
type StoreWriter interface {
	AddTeam(team *Team) error
	UpdateTeam(team *Team) error
	AddProject(project *Project) error
	UpdateProject(project *Project) error

	// AddProjectDependency links upstream -> downstream if both projects
	// exist and the edge is not already present; it reports whether a new
	// edge was written.
	AddProjectDependency(upstreamKey, downstreamKey string) (bool, error)

	AddCVE(cve *CVE) error
	AddTracker(tracker *Tracker) error
	UpdateTracker(tracker *Tracker) error

	// SetLastSync persists the incremental-sync watermark. Callers must only
	// advance it after a sync run finishes without a fatal error.
	SetLastSync(t time.Time) error
}

// Transaction is a store view whose writes are only visible to others after
// Commit. A sync run performs all of its writes through one Transaction.
type Transaction interface {
	StoreReader
	StoreWriter
	Commit() error
	Rollback() error
}

// Store is the full entity store contract.
type Store interface {
	StoreReader
	StoreWriter
	Begin() (Transaction, error)
	Close() error
}
