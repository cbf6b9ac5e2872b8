package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// JournalRepo defines the persistence operations for JournalEntries.
type JournalRepo interface {
	// Create inserts a new entry and returns the persisted record.
	// A zero Date defaults to now.
	Create(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error)

	// GetByID retrieves a single entry, photo included.
	// Returns domain.ErrNotFound if no entry with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error)

	// List returns every entry ordered by date descending.
	List(ctx context.Context) ([]domain.JournalEntry, error)

	// Update overwrites title, content, date, location and photo.
	// Returns domain.ErrNotFound if no entry with that ID exists.
	Update(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error)

	// Delete removes an entry. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every entry and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type sqlJournalRepo struct {
	c Conn
}

// NewJournalRepo constructs a JournalRepo backed by the provided connection.
func NewJournalRepo(c Conn) JournalRepo {
	return &sqlJournalRepo{c: c}
}

const journalColumns = `id, title, content, date, location, photo, created_at, updated_at`

func (r *sqlJournalRepo) Create(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	now := r.c.now()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Date.IsZero() {
		e.Date = now
	}
	e.Date = utc(e.Date)

	const q = `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.c.exec(ctx, q,
		idArg(e.ID), e.Title, e.Content, e.Date, strArg(e.Location), blobArg(e.Photo),
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Create: %w", err)
	}
	return e, nil
}

func (r *sqlJournalRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error) {
	const q = `SELECT ` + journalColumns + ` FROM journal_entries WHERE id = ?`

	result, err := scanJournalEntry(r.c.queryRow(ctx, q, idArg(id)))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *sqlJournalRepo) List(ctx context.Context) ([]domain.JournalEntry, error) {
	const q = `
		SELECT ` + journalColumns + `
		FROM journal_entries
		ORDER BY date DESC, created_at DESC`

	rows, err := r.c.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.JournalRepo.List: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.JournalRepo.List: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.JournalRepo.List: rows: %w", err)
	}
	return entries, nil
}

func (r *sqlJournalRepo) Update(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	const q = `
		UPDATE journal_entries
		SET title      = ?,
		    content    = ?,
		    date       = ?,
		    location   = ?,
		    photo      = ?,
		    updated_at = ?
		WHERE id = ?`

	res, err := r.c.exec(ctx, q,
		e.Title, e.Content, utc(e.Date), strArg(e.Location), blobArg(e.Photo),
		r.c.now(), idArg(e.ID))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Update: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Update: %w", err)
	} else if !ok {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, e.ID)
}

func (r *sqlJournalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.c.exec(ctx, `DELETE FROM journal_entries WHERE id = ?`, idArg(id))
	if err != nil {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", err)
	} else if !ok {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlJournalRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM journal_entries`)
	if err != nil {
		return 0, fmt.Errorf("repo.JournalRepo.DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("repo.JournalRepo.DeleteAll: %w", err)
	}
	return n, nil
}

func scanJournalEntry(s scanner) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := s.Scan(&e.ID, &e.Title, &e.Content, &e.Date, &e.Location, &e.Photo,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.JournalEntry{}, domain.ErrNotFound
		}
		return domain.JournalEntry{}, err
	}
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
