package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"propertyhub/server/internal/models"
)

// CreateUser inserts a user and returns its generated id.
func (c *Conn) CreateUser(ctx context.Context, firstName, lastName, dateOfBirth string) (int64, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return 0, err
	}

	result, err := conn.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, date_of_birth)
		VALUES (?, ?, ?)
	`, firstName, lastName, dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

// ListUsers returns all users ordered by id ascending.
func (c *Conn) ListUsers(ctx context.Context) ([]models.User, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetUser returns the user with the given id, or nil when it does not exist.
func (c *Conn) GetUser(ctx context.Context, id int64) (*models.User, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}

	row := conn.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth
		FROM users
		WHERE id = ?
	`, id)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the given column values to a user row in a single
// statement. Keys are sorted so the generated SQL is stable.
func (c *Conn) UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns)+1)
	for _, column := range columns {
		assignments = append(assignments, column+" = ?")
		values = append(values, fields[column])
	}
	values = append(values, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(assignments, ", "))
	if _, err := conn.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	var firstName, lastName, dateOfBirth sql.NullString

	if err := row.Scan(&user.ID, &firstName, &lastName, &dateOfBirth); err != nil {
		if err == sql.ErrNoRows {
			return user, err
		}
		return user, fmt.Errorf("failed to scan user: %w", err)
	}

	if firstName.Valid {
		user.FirstName = &firstName.String
	}
	if lastName.Valid {
		user.LastName = &lastName.String
	}
	if dateOfBirth.Valid {
		user.DateOfBirth = &dateOfBirth.String
	}
	return user, nil
}
