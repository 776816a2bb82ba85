package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. The application state lives as JSON
// snapshots and scalar settings in a single key-value table, mirroring the
// string-key/string-value storage layout the dashboard persists to.
const schema = `
CREATE TABLE IF NOT EXISTS storage (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
