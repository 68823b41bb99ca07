package internal

const (
	// ApplicationName is the non-capitalized name of the application (do not change this)
	ApplicationName = "cvelens"

	// DBFileName is the name of the sqlite database file within the db directory
	DBFileName = "cvelens.db"
)
