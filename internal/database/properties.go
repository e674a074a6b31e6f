package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"propertyhub/server/internal/models"
)

// ErrOwnerNotFound is returned when a property insert references a user that
// does not exist.
var ErrOwnerNotFound = errors.New("owner user not found")

const propertySelect = `
	SELECT p.id, p.name, p.description, p.property_type, p.city,
	       p.rooms_count, COALESCE(p.rooms_details, '') AS rooms_details,
	       p.created_at, p.updated_at,
	       u.id AS owner_id, u.first_name, u.last_name
	FROM properties p
	JOIN users u ON p.owner_id = u.id
`

// GetProperty returns the property with the given id joined against its
// owner, or nil when it does not exist.
func (c *Conn) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}

	row := conn.QueryRowContext(ctx, propertySelect+" WHERE p.id = ?", id)
	property, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// ListProperties returns properties in the given city (case-insensitive
// exact match), newest first.
func (c *Conn) ListProperties(ctx context.Context, city string, limit, offset int) ([]models.Property, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, propertySelect+`
		WHERE LOWER(p.city) = LOWER(?)
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?
	`, city, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]models.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties: %w", err)
	}
	return properties, nil
}

// CreateProperty verifies the owner exists and inserts the property inside
// one transaction, returning the generated id. The existence check is
// advisory; the foreign key on owner_id is the actual safety net against a
// concurrently deleted user.
func (c *Conn) CreateProperty(ctx context.Context, ownerID int64, fields map[string]interface{}) (int64, error) {
	var id int64
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", ownerID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check owner: %w", err)
		}
		if !exists {
			return ErrOwnerNotFound
		}

		timestamp := now()
		result, err := tx.ExecContext(ctx, `
			INSERT INTO properties (
				name, description, property_type, city,
				rooms_count, rooms_details, owner_id,
				created_at, updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			fields["name"],
			fields["description"],
			fields["property_type"],
			fields["city"],
			fields["rooms_count"],
			fields["rooms_details"],
			ownerID,
			timestamp,
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert property: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get property id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateProperty applies the given column values to a property row in a
// single statement, refreshing updated_at.
func (c *Conn) UpdateProperty(ctx context.Context, id int64, fields map[string]interface{}) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns)+1)
	values := make([]interface{}, 0, len(columns)+2)
	for _, column := range columns {
		assignments = append(assignments, column+" = ?")
		values = append(values, fields[column])
	}
	assignments = append(assignments, "updated_at = ?")
	values = append(values, now(), id)

	query := fmt.Sprintf("UPDATE properties SET %s WHERE id = ?", strings.Join(assignments, ", "))
	if _, err := conn.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// DeleteProperty removes a property row.
func (c *Conn) DeleteProperty(ctx context.Context, id int64) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func scanProperty(row scanner) (models.Property, error) {
	var p models.Property
	var roomsDetails, createdAt, updatedAt string
	var firstName, lastName sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PropertyType,
		&p.City,
		&p.RoomsCount,
		&roomsDetails,
		&createdAt,
		&updatedAt,
		&p.Owner.ID,
		&firstName,
		&lastName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return p, err
		}
		return p, fmt.Errorf("failed to scan property: %w", err)
	}

	p.RoomsDetails = models.ParseRoomsDetails(roomsDetails)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	if firstName.Valid {
		p.Owner.FirstName = &firstName.String
	}
	if lastName.Valid {
		p.Owner.LastName = &lastName.String
	}
	return p, nil
}
