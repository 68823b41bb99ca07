package db

// Team owns zero or more projects. Teams are only created via config
// reconciliation, never by the sync path.
type Team struct {
	ID          uint
	Name        string
	Description string
}
