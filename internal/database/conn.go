package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
)

type connKey struct{}

// Conn is a database connection scoped to a single request. The underlying
// connection is opened lazily on first use, cached for the remainder of the
// request, and returned to the pool by Release.
type Conn struct {
	db    *sql.DB
	conn  *sql.Conn
	err   error
	dirty bool
}

func (d *Database) NewConn() *Conn {
	return &Conn{db: d.db}
}

// WithConn attaches a request-scoped connection to the context. Handlers
// retrieve it with FromContext.
func WithConn(ctx context.Context, conn *Conn) context.Context {
	return context.WithValue(ctx, connKey{}, conn)
}

func FromContext(ctx context.Context) *Conn {
	conn, _ := ctx.Value(connKey{}).(*Conn)
	return conn
}

func (c *Conn) acquire(ctx context.Context) (*sql.Conn, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.conn == nil {
		conn, err := c.db.Conn(ctx)
		if err != nil {
			c.err = fmt.Errorf("failed to acquire connection: %w", err)
			return nil, c.err
		}
		c.conn = conn
	}
	return c.conn, nil
}

// Release returns the request connection to the pool. A connection left
// inside an open transaction is discarded instead of reused, so a dirty
// transaction can never leak into another request.
func (c *Conn) Release() {
	if c.conn == nil {
		c.err = sql.ErrConnDone
		return
	}
	if c.dirty {
		_ = c.conn.Raw(func(interface{}) error { return driver.ErrBadConn })
	}
	_ = c.conn.Close()
	c.conn = nil
	c.err = sql.ErrConnDone
}

// withTx runs fn inside a transaction on the request connection, committing
// only when fn succeeds.
func (c *Conn) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	c.dirty = true

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr == nil {
			c.dirty = false
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	c.dirty = false
	return nil
}
