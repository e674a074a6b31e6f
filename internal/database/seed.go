package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type seedProperty struct {
	name         string
	description  string
	propertyType string
	city         string
	roomsCount   int
	roomsDetails []map[string]interface{}
}

// Seed inserts sample users and properties for development environments.
// Does nothing when the users table already has rows.
func (d *Database) Seed(ctx context.Context) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	aliceID, err := seedUser(ctx, tx, "Alice", "Owner", "1990-01-01")
	if err != nil {
		return err
	}
	bobID, err := seedUser(ctx, tx, "Bob", "Landlord", "1985-05-15")
	if err != nil {
		return err
	}

	properties := []struct {
		ownerID  int64
		property seedProperty
	}{
		{aliceID, seedProperty{
			name:         "Appartement centre-ville",
			description:  "Super appart proche métro",
			propertyType: "apartment",
			city:         "Paris",
			roomsCount:   2,
			roomsDetails: []map[string]interface{}{
				{"name": "chambre", "size": 12},
				{"name": "salon", "size": 20},
			},
		}},
		{bobID, seedProperty{
			name:         "Maison de campagne",
			description:  "Maison calme avec jardin",
			propertyType: "house",
			city:         "Lyon",
			roomsCount:   3,
			roomsDetails: []map[string]interface{}{
				{"name": "chambre", "size": 15},
				{"name": "salon", "size": 25},
				{"name": "cuisine", "size": 10},
			},
		}},
	}

	for _, entry := range properties {
		details, err := json.Marshal(entry.property.roomsDetails)
		if err != nil {
			return fmt.Errorf("failed to serialize rooms details: %w", err)
		}

		timestamp := now()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO properties (
				name, description, property_type, city,
				rooms_count, rooms_details, owner_id,
				created_at, updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			entry.property.name,
			entry.property.description,
			entry.property.propertyType,
			entry.property.city,
			entry.property.roomsCount,
			string(details),
			entry.ownerID,
			timestamp,
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sample property: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func seedUser(ctx context.Context, tx *sql.Tx, firstName, lastName, dateOfBirth string) (int64, error) {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, date_of_birth)
		VALUES (?, ?, ?)
	`, firstName, lastName, dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sample user: %w", err)
	}
	return result.LastInsertId()
}
