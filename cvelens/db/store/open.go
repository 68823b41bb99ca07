package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/gorm"
	// provide the sqlite dialect to gorm via import
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/cvelens/cvelens/internal/log"
)

var connectStatements = []string{
	// tracker/project/cve cross references should never dangle
	`PRAGMA foreign_keys = ON`,
}

// config defines the information needed to connect and create a sqlite3 database
type config struct {
	dbPath    string
	overwrite bool
}

// connectionString creates a connection string for sqlite3
func (o config) connectionString() (string, error) {
	if o.dbPath == "" {
		return "", fmt.Errorf("no db filepath given")
	}
	return fmt.Sprintf("file:%s?cache=shared", o.dbPath), nil
}

// open a new connection to a sqlite3 database file
func open(cfg config) (*gorm.DB, error) {
	if cfg.overwrite {
		// the file may or may not exist, so we ignore the error explicitly
		if _, err := os.Stat(cfg.dbPath); !os.IsNotExist(err) {
			if rmErr := os.Remove(cfg.dbPath); rmErr != nil {
				return nil, rmErr
			}
		}
	}

	if parent := filepath.Dir(cfg.dbPath); parent != "." {
		if err := os.MkdirAll(parent, 0700); err != nil {
			return nil, fmt.Errorf("unable to create db parent directory %q: %w", parent, err)
		}
	}

	connStr, err := cfg.connectionString()
	if err != nil {
		return nil, err
	}

	dbObj, err := gorm.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to DB: %w", err)
	}

	dbObj.SetLogger(&logAdapter{})

	for _, sqlStmt := range connectStatements {
		dbObj.Exec(sqlStmt)
		if dbObj.Error != nil {
			return nil, fmt.Errorf("unable to execute (%s): %w", sqlStmt, dbObj.Error)
		}
	}
	return dbObj, nil
}

type logAdapter struct{}

func (l *logAdapter) Print(v ...interface{}) {
	log.Debugf("gorm: %v", v)
}
