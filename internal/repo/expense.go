package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
// An expense may belong to one trip or to none.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	// An empty Category defaults to "Other" and a zero Date to now.
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense.
	// Returns domain.ErrNotFound if no expense with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error)

	// List returns every expense ordered by date descending.
	List(ctx context.Context) ([]domain.Expense, error)

	// ListByTripID returns the expenses of one trip ordered by date descending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Update overwrites the mutable fields of an expense, including its trip.
	// Returns domain.ErrNotFound if no expense with that ID exists.
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// Delete removes an expense. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every expense and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type sqlExpenseRepo struct {
	c Conn
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided connection.
func NewExpenseRepo(c Conn) ExpenseRepo {
	return &sqlExpenseRepo{c: c}
}

const expenseColumns = `id, trip_id, amount, category, date, notes, created_at, updated_at`

func (r *sqlExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	now := r.c.now()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Category == "" {
		e.Category = domain.ExpenseOther
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	e.Date = utc(e.Date)

	const q = `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.c.exec(ctx, q,
		idArg(e.ID), nullIDArg(e.TripID), e.Amount.String(), e.Category, e.Date,
		strArg(e.Notes), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return e, nil
}

func (r *sqlExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`

	result, err := scanExpense(r.c.queryRow(ctx, q, idArg(id)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *sqlExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY date DESC, created_at DESC`

	expenses, err := r.list(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.List: %w", err)
	}
	return expenses, nil
}

func (r *sqlExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = ?
		ORDER BY date DESC, created_at DESC`

	expenses, err := r.list(ctx, q, idArg(tripID))
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	return expenses, nil
}

func (r *sqlExpenseRepo) list(ctx context.Context, q string, args ...any) ([]domain.Expense, error) {
	rows, err := r.c.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return expenses, nil
}

func (r *sqlExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET trip_id    = ?,
		    amount     = ?,
		    category   = ?,
		    date       = ?,
		    notes      = ?,
		    updated_at = ?
		WHERE id = ?`

	res, err := r.c.exec(ctx, q,
		nullIDArg(e.TripID), e.Amount.String(), e.Category, utc(e.Date), strArg(e.Notes),
		r.c.now(), idArg(e.ID))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	} else if !ok {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, e.ID)
}

func (r *sqlExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.c.exec(ctx, `DELETE FROM expenses WHERE id = ?`, idArg(id))
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	} else if !ok {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlExpenseRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM expenses`)
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.DeleteAll: %w", err)
	}
	return n, nil
}

// scanExpense maps a single database row into a domain.Expense.
// amount is stored as text on SQLite and NUMERIC on Postgres; decimal.Decimal
// scans both.
func scanExpense(s scanner) (domain.Expense, error) {
	var e domain.Expense
	err := s.Scan(&e.ID, &e.TripID, &e.Amount, &e.Category, &e.Date,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
