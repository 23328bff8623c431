// Package snapshot materializes query results into a local SQLite file
// so exports can be inspected offline with ordinary SQL tooling.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS records (
		key  TEXT NOT NULL,
		path TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (path, key)
	);

	CREATE TABLE IF NOT EXISTS snapshot_meta (
		path       TEXT PRIMARY KEY,
		source     TEXT NOT NULL,
		written_at INTEGER NOT NULL,
		records    INTEGER NOT NULL
	);
`

// Entry is one record to materialize.
type Entry struct {
	Key   string
	Value any
}

// Write creates or updates a snapshot file at dbPath with the records
// read from the given backend path. Existing records under the same
// path are replaced wholesale so a snapshot always reflects one read.
func Write(dbPath, source, path string, entries []Entry) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening snapshot file: %w", err)
	}
	defer db.Close()

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating snapshot schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records WHERE path = ?", path); err != nil {
		return fmt.Errorf("clearing previous snapshot: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO records (key, path, data) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		data, err := json.Marshal(e.Value)
		if err != nil {
			return fmt.Errorf("encoding record %q: %w", e.Key, err)
		}
		if _, err := stmt.Exec(e.Key, path, string(data)); err != nil {
			return fmt.Errorf("inserting record %q: %w", e.Key, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO snapshot_meta (path, source, written_at, records) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET source = excluded.source,
		 written_at = excluded.written_at, records = excluded.records`,
		path, source, time.Now().Unix(), len(entries),
	); err != nil {
		return fmt.Errorf("recording snapshot metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Count returns the number of records stored under a path, for
// verification after a write.
func Count(dbPath, path string) (int, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM records WHERE path = ?", path).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
