package database

import (
	"context"
	"fmt"
	"strings"
)

const schemaSQL = `
DROP TABLE IF EXISTS properties;

DROP TABLE IF EXISTS users;

CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT,
    last_name TEXT,
    date_of_birth TEXT
);

CREATE TABLE properties (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    property_type TEXT NOT NULL,
    city TEXT NOT NULL,
    rooms_count INTEGER NOT NULL DEFAULT 0,
    rooms_details TEXT
);

CREATE INDEX idx_properties_city ON properties(city)
`

// Reset drops and recreates the schema. Destructive; only reachable through
// the explicit admin flag, never from request handling. All statements run
// in a single transaction and nothing is committed unless every statement
// succeeds.
func (d *Database) Reset(ctx context.Context) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, statement := range strings.Split(schemaSQL, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
