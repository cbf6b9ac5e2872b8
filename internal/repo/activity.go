package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
// Every activity is owned by exactly one trip.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	// A zero Date defaults to now.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByTripID returns all activities of a trip ordered by date ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites the mutable fields of an activity.
	// The owning trip is not changed. Returns domain.ErrNotFound if no
	// activity with that ID exists.
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// Delete removes an activity. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every activity and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type sqlActivityRepo struct {
	c Conn
}

// NewActivityRepo constructs an ActivityRepo backed by the provided connection.
func NewActivityRepo(c Conn) ActivityRepo {
	return &sqlActivityRepo{c: c}
}

const activityColumns = `id, trip_id, name, date, time_of_day, location, notes, created_at, updated_at`

func (r *sqlActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	now := r.c.now()
	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Date.IsZero() {
		a.Date = now
	}
	a.Date = utc(a.Date)
	a.Time = utcPtr(a.Time)

	const q = `
		INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.c.exec(ctx, q,
		idArg(a.ID), idArg(a.TripID), a.Name, a.Date, timeArg(a.Time),
		strArg(a.Location), strArg(a.Notes), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return a, nil
}

func (r *sqlActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`

	result, err := scanActivity(r.c.queryRow(ctx, q, idArg(id)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *sqlActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = ?
		ORDER BY date ASC, created_at ASC`

	rows, err := r.c.query(ctx, q, idArg(tripID))
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: rows: %w", err)
	}
	return activities, nil
}

func (r *sqlActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET name        = ?,
		    date        = ?,
		    time_of_day = ?,
		    location    = ?,
		    notes       = ?,
		    updated_at  = ?
		WHERE id = ?`

	res, err := r.c.exec(ctx, q,
		a.Name, utc(a.Date), timeArg(a.Time), strArg(a.Location), strArg(a.Notes),
		r.c.now(), idArg(a.ID))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	} else if !ok {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, a.ID)
}

func (r *sqlActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.c.exec(ctx, `DELETE FROM activities WHERE id = ?`, idArg(id))
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	} else if !ok {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlActivityRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM activities`)
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.DeleteAll: %w", err)
	}
	return n, nil
}

// scanActivity maps a single database row into a domain.Activity.
// The nullable time_of_day column is read through sql.NullTime.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a   domain.Activity
		tod sql.NullTime
	)
	err := s.Scan(&a.ID, &a.TripID, &a.Name, &a.Date, &tod,
		&a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.Date = a.Date.UTC()
	if tod.Valid {
		t := tod.Time.UTC()
		a.Time = &t
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
