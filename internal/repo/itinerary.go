package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// ItineraryRepo stores itinerary items one row per item, keyed by id.
// A position column keeps the list order that callers see in List.
// trip_id is not a foreign key: items outlive their trip.
type ItineraryRepo interface {
	// Upsert inserts item, or overwrites the stored item with the same ID.
	// A nil ID is replaced by a fresh one and a zero Date by now. New items
	// are appended after the last position; existing items keep theirs.
	Upsert(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// GetByID retrieves a single item.
	// Returns domain.ErrNotFound if no item with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryItem, error)

	// List returns every item in list order.
	List(ctx context.Context) ([]domain.ItineraryItem, error)

	// ListByTripID returns the items of one trip ordered by date ascending,
	// ties broken by list order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)

	// ReplaceAll discards every stored item and stores items in the given
	// order. It issues several statements; run it on a transaction when the
	// replacement must be atomic.
	ReplaceAll(ctx context.Context, items []domain.ItineraryItem) ([]domain.ItineraryItem, error)

	// Delete removes an item. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every item and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type sqlItineraryRepo struct {
	c Conn
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided connection.
func NewItineraryRepo(c Conn) ItineraryRepo {
	return &sqlItineraryRepo{c: c}
}

const itineraryColumns = `id, trip_id, title, location, date, time_text, category, notes, completed`

func (r *sqlItineraryRepo) prepare(item domain.ItineraryItem) domain.ItineraryItem {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Date.IsZero() {
		item.Date = r.c.now()
	}
	item.Date = utc(item.Date)
	return item
}

func (r *sqlItineraryRepo) Upsert(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	item = r.prepare(item)

	const q = `
		INSERT INTO itinerary_items (` + itineraryColumns + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?,
		        (SELECT COALESCE(MAX(position), -1) + 1 FROM itinerary_items))
		ON CONFLICT (id) DO UPDATE
		SET trip_id   = excluded.trip_id,
		    title     = excluded.title,
		    location  = excluded.location,
		    date      = excluded.date,
		    time_text = excluded.time_text,
		    category  = excluded.category,
		    notes     = excluded.notes,
		    completed = excluded.completed`

	if _, err := r.c.exec(ctx, q, itemArgs(item)...); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Upsert: %w", err)
	}
	return item, nil
}

func (r *sqlItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryItem, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itinerary_items WHERE id = ?`

	result, err := scanItineraryItem(r.c.queryRow(ctx, q, idArg(id)))
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *sqlItineraryRepo) List(ctx context.Context) ([]domain.ItineraryItem, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itinerary_items
		ORDER BY position ASC`

	items, err := r.list(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	return items, nil
}

func (r *sqlItineraryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itinerary_items
		WHERE trip_id = ?
		ORDER BY date ASC, position ASC`

	items, err := r.list(ctx, q, idArg(tripID))
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: %w", err)
	}
	return items, nil
}

func (r *sqlItineraryRepo) list(ctx context.Context, q string, args ...any) ([]domain.ItineraryItem, error) {
	rows, err := r.c.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ItineraryItem{}
	for rows.Next() {
		item, err := scanItineraryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (r *sqlItineraryRepo) ReplaceAll(ctx context.Context, items []domain.ItineraryItem) ([]domain.ItineraryItem, error) {
	if _, err := r.c.exec(ctx, `DELETE FROM itinerary_items`); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceAll: clear: %w", err)
	}

	// A repeated ID keeps the fields of its last occurrence and the position
	// of its first.
	const q = `
		INSERT INTO itinerary_items (` + itineraryColumns + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET trip_id   = excluded.trip_id,
		    title     = excluded.title,
		    location  = excluded.location,
		    date      = excluded.date,
		    time_text = excluded.time_text,
		    category  = excluded.category,
		    notes     = excluded.notes,
		    completed = excluded.completed`

	stored := make([]domain.ItineraryItem, 0, len(items))
	for i, item := range items {
		item = r.prepare(item)
		args := append(itemArgs(item), i)
		if _, err := r.c.exec(ctx, q, args...); err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceAll: insert %s: %w", item.ID, err)
		}
		stored = append(stored, item)
	}
	return stored, nil
}

func (r *sqlItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.c.exec(ctx, `DELETE FROM itinerary_items WHERE id = ?`, idArg(id))
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	} else if !ok {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlItineraryRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM itinerary_items`)
	if err != nil {
		return 0, fmt.Errorf("repo.ItineraryRepo.DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("repo.ItineraryRepo.DeleteAll: %w", err)
	}
	return n, nil
}

// itemArgs returns the insert arguments in itineraryColumns order.
func itemArgs(item domain.ItineraryItem) []any {
	return []any{
		idArg(item.ID), idArg(item.TripID), item.Title, item.Location, item.Date,
		item.Time, item.Category, item.Notes, item.Completed,
	}
}

func scanItineraryItem(s scanner) (domain.ItineraryItem, error) {
	var item domain.ItineraryItem
	err := s.Scan(&item.ID, &item.TripID, &item.Title, &item.Location, &item.Date,
		&item.Time, &item.Category, &item.Notes, &item.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		}
		return domain.ItineraryItem{}, err
	}
	item.Date = item.Date.UTC()
	return item, nil
}
