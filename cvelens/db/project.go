package db

// Project is a tracker project, identified by its stable external key.
// TeamID is nil for projects discovered by the sync path before any team
// claims them via config reconciliation.
type Project struct {
	ID         uint
	Key        string
	Name       string
	TeamID     *uint
	ExternalID string
}
