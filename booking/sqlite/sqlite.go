// Package sqlite provides a booking.Store backed by a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hotelkit/concierge/booking"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id         TEXT PRIMARY KEY,
	guest_name TEXT NOT NULL,
	room       TEXT NOT NULL,
	status     TEXT NOT NULL,
	check_in   TEXT NOT NULL,
	check_out  TEXT NOT NULL
);
`

// Store wraps *sql.DB for booking records. Schema is owned by the app and
// applied on open.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path, creating the file and schema if
// missing.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying bookings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces a record. Used by seeding and tests.
func (s *Store) Put(ctx context.Context, rec booking.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO bookings (id, guest_name, room, status, check_in, check_out) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GuestName, rec.Room, rec.Status, rec.CheckIn, rec.CheckOut,
	)
	return err
}

// FindByID implements booking.Store.
func (s *Store) FindByID(ctx context.Context, id string) (*booking.Record, error) {
	var rec booking.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, guest_name, room, status, check_in, check_out FROM bookings WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.GuestName, &rec.Room, &rec.Status, &rec.CheckIn, &rec.CheckOut)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking %s: %w", id, err)
	}
	return &rec, nil
}
