package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete SQL implementation,
// which allows services to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record with a fresh
	// id and timestamps. A zero StartDate or EndDate defaults to now.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips ordered by start_date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID together with its activities and expenses.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every trip (and, by cascade, every trip-owned child)
	// and returns the number of trips removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// sqlTripRepo is the SQL implementation of TripRepo.
type sqlTripRepo struct {
	c Conn
}

// NewTripRepo constructs a TripRepo backed by the provided connection.
// In production pass the store's *sql.DB; in tests a *sql.Tx works too.
func NewTripRepo(c Conn) TripRepo {
	return &sqlTripRepo{c: c}
}

const tripColumns = `id, name, destination, start_date, end_date, notes, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *sqlTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	now := r.c.now()
	trip.ID = uuid.New()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	if trip.StartDate.IsZero() {
		trip.StartDate = now
	}
	if trip.EndDate.IsZero() {
		trip.EndDate = now
	}
	trip.StartDate = utc(trip.StartDate)
	trip.EndDate = utc(trip.EndDate)

	const q = `
		INSERT INTO trips (` + tripColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.c.exec(ctx, q,
		idArg(trip.ID), trip.Name, trip.Destination, trip.StartDate, trip.EndDate,
		strArg(trip.Notes), trip.CreatedAt, trip.UpdatedAt)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip, nil
}

// GetByID retrieves a trip by primary key.
func (r *sqlTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`

	result, err := scanTrip(r.c.queryRow(ctx, q, idArg(id)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start_date descending (most recent first).
func (r *sqlTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY start_date DESC, created_at DESC`

	rows, err := r.c.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *sqlTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name        = ?,
		    destination = ?,
		    start_date  = ?,
		    end_date    = ?,
		    notes       = ?,
		    updated_at  = ?
		WHERE id = ?`

	res, err := r.c.exec(ctx, q,
		trip.Name, trip.Destination, utc(trip.StartDate), utc(trip.EndDate),
		strArg(trip.Notes), r.c.now(), idArg(trip.ID))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	} else if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, trip.ID)
}

// Delete removes a trip by primary key. Activities and expenses go with it
// through the ON DELETE CASCADE foreign keys.
func (r *sqlTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.c.exec(ctx, `DELETE FROM trips WHERE id = ?`, idArg(id))
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	} else if !ok {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every trip.
func (r *sqlTripRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM trips`)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.DeleteAll: %w", err)
	}
	return n, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(&t.ID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.StartDate = t.StartDate.UTC()
	t.EndDate = t.EndDate.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}
