package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/migrations"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database, used by tests
const MemoryPath = ":memory:"

// Open connects to the SQLite file at path, applies the connection
// pragmas and runs all pending migrations.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		// Add connection parameters to better handle concurrency
		dsn = path + "?_journal=WAL&_timeout=10000&_busy_timeout=10000&_txlock=immediate"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == MemoryPath {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Minute * 5)

		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set journal mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Database ready at %s", path)
	return db, nil
}

// TableExists reports whether a table with the given name exists
func TableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
