package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelmaster/internal/domain"
)

// ExpenseStore is the part of the façade ExpenseService needs.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Expenses(ctx context.Context) ([]domain.Expense, error)
	TripExpenses(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}

// ExpenseService implements the expense tracker rules on top of the façade.
type ExpenseService struct {
	store ExpenseStore
}

// NewExpenseService constructs an ExpenseService backed by the provided store.
func NewExpenseService(s ExpenseStore) *ExpenseService {
	return &ExpenseService{store: s}
}

// Add validates and persists a new expense.
// The category must be empty (stored as "Other") or one of the known ones.
func (s *ExpenseService) Add(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if e.Category != "" && !domain.IsKnownExpenseCategory(e.Category) {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w: unknown category %q", domain.ErrValidation, e.Category)
	}
	return s.store.CreateExpense(ctx, e)
}

// Summary totals expenses overall and per category. A nil tripID covers
// every expense, trip or not.
func (s *ExpenseService) Summary(ctx context.Context, tripID *uuid.UUID) (domain.ExpenseSummary, error) {
	var (
		expenses []domain.Expense
		err      error
	)
	if tripID == nil {
		expenses, err = s.store.Expenses(ctx)
	} else {
		expenses, err = s.store.TripExpenses(ctx, *tripID)
	}
	if err != nil {
		return domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summary: %w", err)
	}

	summary := domain.ExpenseSummary{
		Count:      len(expenses),
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.Amount)
		summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(e.Amount)
	}
	return summary, nil
}
