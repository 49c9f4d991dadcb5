package database

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Connect opens the database for the configured driver and makes sure the schema exists.
// driver is "sqlite" or "postgres".
func Connect(driver, dsn string) (*sqlx.DB, error) {
	driverName, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	if driverName == "sqlite3" && dsn != ":memory:" && !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if driverName == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to enable foreign keys")
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", errors.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates the tables that don't exist yet.
func Migrate(db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == "postgres" {
		statements = postgresSchema
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt.sql); err != nil {
			return errors.Wrapf(err, "failed to create %s", stmt.name)
		}
	}
	return nil
}
