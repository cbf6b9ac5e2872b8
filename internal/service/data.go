// Package service contains the TravelMaster data-access façade and the
// feature services built on it.
// DataService is the only component that touches the store; the feature
// services (trips, expenses, journal, itinerary, export) add the aggregation
// and editing rules the app screens need.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/internal/metrics"
	"github.com/pkordes/travelmaster/internal/prefs"
	"github.com/pkordes/travelmaster/internal/repo"
	"github.com/pkordes/travelmaster/internal/store"
)

// Entity kinds used in logs and metrics.
const (
	KindTrip          = "trip"
	KindActivity      = "activity"
	KindExpense       = "expense"
	KindJournalEntry  = "journal_entry"
	KindItineraryItem = "itinerary_item"
	KindItineraryList = "itinerary_list"
	KindUnitOfWork    = "unit_of_work"
)

// DataService is the data-access façade. It wraps one explicitly passed
// store handle; every operation returns its error, and every failure is also
// logged and counted.
type DataService struct {
	store   *store.Store
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewDataService constructs the façade. log may be nil (slog.Default is
// used) and m may be nil (nothing is counted).
func NewDataService(st *store.Store, log *slog.Logger, m *metrics.Metrics) *DataService {
	if log == nil {
		log = slog.Default()
	}
	return &DataService{store: st, log: log, metrics: m}
}

// observe records the outcome of one operation and returns err unchanged.
// Missing records and rejected input are expected outcomes and only logged
// at debug level.
func (s *DataService) observe(ctx context.Context, kind, op string, err error) error {
	s.metrics.Observe(kind, op, err)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrValidation):
		s.log.DebugContext(ctx, "store operation rejected", "kind", kind, "op", op, "error", err)
	default:
		s.log.ErrorContext(ctx, "store operation failed", "kind", kind, "op", op, "error", err)
	}
	return err
}

// InTx runs fn as one unit of work: every change made through the given
// repos is committed together when fn returns nil, or none is.
func (s *DataService) InTx(ctx context.Context, fn func(r repo.Set) error) error {
	if err := s.store.InTx(ctx, fn); err != nil {
		return s.observe(ctx, KindUnitOfWork, "commit", fmt.Errorf("service.DataService.InTx: %w", err))
	}
	s.metrics.Observe(KindUnitOfWork, "commit", nil)
	return nil
}

func (s *DataService) repos() repo.Set {
	return s.store.Repos()
}

// ---- Trips -----------------------------------------------------------------

// CreateTrip persists a new trip and returns it with its assigned ID.
func (s *DataService) CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	created, err := s.repos().Trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, s.observe(ctx, KindTrip, "create", fmt.Errorf("service.DataService.CreateTrip: %w", err))
	}
	s.observe(ctx, KindTrip, "create", nil)
	return created, nil
}

// Trip returns a single trip.
func (s *DataService) Trip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repos().Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, s.observe(ctx, KindTrip, "get", fmt.Errorf("service.DataService.Trip: %w", err))
	}
	return trip, nil
}

// Trips returns every trip, latest start date first.
func (s *DataService) Trips(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repos().Trips.List(ctx)
	if err != nil {
		return nil, s.observe(ctx, KindTrip, "list", fmt.Errorf("service.DataService.Trips: %w", err))
	}
	return trips, nil
}

// SaveTrip writes back an edited trip.
func (s *DataService) SaveTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	saved, err := s.repos().Trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, s.observe(ctx, KindTrip, "save", fmt.Errorf("service.DataService.SaveTrip: %w", err))
	}
	s.observe(ctx, KindTrip, "save", nil)
	return saved, nil
}

// DeleteTrip removes a trip; the store removes its activities and expenses
// with it. Itinerary items that name the trip are left in place.
func (s *DataService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := s.repos().Trips.Delete(ctx, id); err != nil {
		return s.observe(ctx, KindTrip, "delete", fmt.Errorf("service.DataService.DeleteTrip: %w", err))
	}
	s.observe(ctx, KindTrip, "delete", nil)
	return nil
}

// ---- Activities ------------------------------------------------------------

// CreateActivity persists a new activity under tripID.
// Returns domain.ErrValidation for a nil tripID and domain.ErrNotFound when
// the trip does not exist.
func (s *DataService) CreateActivity(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	if tripID == uuid.Nil {
		err := fmt.Errorf("service.DataService.CreateActivity: %w: activity must belong to a trip", domain.ErrValidation)
		return domain.Activity{}, s.observe(ctx, KindActivity, "create", err)
	}
	a.TripID = tripID

	var created domain.Activity
	err := s.store.InTx(ctx, func(r repo.Set) error {
		if _, err := r.Trips.GetByID(ctx, tripID); err != nil {
			return err
		}
		var err error
		created, err = r.Activities.Create(ctx, a)
		return err
	})
	if err != nil {
		return domain.Activity{}, s.observe(ctx, KindActivity, "create", fmt.Errorf("service.DataService.CreateActivity: %w", err))
	}
	s.observe(ctx, KindActivity, "create", nil)
	return created, nil
}

// Activities returns the activities of a trip, earliest first.
func (s *DataService) Activities(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.repos().Activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, s.observe(ctx, KindActivity, "list", fmt.Errorf("service.DataService.Activities: %w", err))
	}
	return activities, nil
}

// SaveActivity writes back an edited activity. Its trip cannot be changed.
func (s *DataService) SaveActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	saved, err := s.repos().Activities.Update(ctx, a)
	if err != nil {
		return domain.Activity{}, s.observe(ctx, KindActivity, "save", fmt.Errorf("service.DataService.SaveActivity: %w", err))
	}
	s.observe(ctx, KindActivity, "save", nil)
	return saved, nil
}

// DeleteActivity removes an activity.
func (s *DataService) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if err := s.repos().Activities.Delete(ctx, id); err != nil {
		return s.observe(ctx, KindActivity, "delete", fmt.Errorf("service.DataService.DeleteActivity: %w", err))
	}
	s.observe(ctx, KindActivity, "delete", nil)
	return nil
}

// ---- Expenses --------------------------------------------------------------

// CreateExpense persists a new expense. When e.TripID is set the trip must
// exist (domain.ErrNotFound otherwise).
func (s *DataService) CreateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	var created domain.Expense
	err := s.store.InTx(ctx, func(r repo.Set) error {
		if e.TripID.Valid {
			if _, err := r.Trips.GetByID(ctx, e.TripID.UUID); err != nil {
				return err
			}
		}
		var err error
		created, err = r.Expenses.Create(ctx, e)
		return err
	})
	if err != nil {
		return domain.Expense{}, s.observe(ctx, KindExpense, "create", fmt.Errorf("service.DataService.CreateExpense: %w", err))
	}
	s.observe(ctx, KindExpense, "create", nil)
	return created, nil
}

// Expense returns a single expense.
func (s *DataService) Expense(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	e, err := s.repos().Expenses.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, s.observe(ctx, KindExpense, "get", fmt.Errorf("service.DataService.Expense: %w", err))
	}
	return e, nil
}

// Expenses returns every expense, newest first.
func (s *DataService) Expenses(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.repos().Expenses.List(ctx)
	if err != nil {
		return nil, s.observe(ctx, KindExpense, "list", fmt.Errorf("service.DataService.Expenses: %w", err))
	}
	return expenses, nil
}

// TripExpenses returns the expenses of one trip, newest first.
func (s *DataService) TripExpenses(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.repos().Expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, s.observe(ctx, KindExpense, "list", fmt.Errorf("service.DataService.TripExpenses: %w", err))
	}
	return expenses, nil
}

// SaveExpense writes back an edited expense, checking a newly set trip.
func (s *DataService) SaveExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	var saved domain.Expense
	err := s.store.InTx(ctx, func(r repo.Set) error {
		if e.TripID.Valid {
			if _, err := r.Trips.GetByID(ctx, e.TripID.UUID); err != nil {
				return err
			}
		}
		var err error
		saved, err = r.Expenses.Update(ctx, e)
		return err
	})
	if err != nil {
		return domain.Expense{}, s.observe(ctx, KindExpense, "save", fmt.Errorf("service.DataService.SaveExpense: %w", err))
	}
	s.observe(ctx, KindExpense, "save", nil)
	return saved, nil
}

// DeleteExpense removes an expense.
func (s *DataService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.repos().Expenses.Delete(ctx, id); err != nil {
		return s.observe(ctx, KindExpense, "delete", fmt.Errorf("service.DataService.DeleteExpense: %w", err))
	}
	s.observe(ctx, KindExpense, "delete", nil)
	return nil
}

// ---- Journal ---------------------------------------------------------------

// CreateJournalEntry persists a new entry, photo bytes as given.
func (s *DataService) CreateJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	created, err := s.repos().Journal.Create(ctx, e)
	if err != nil {
		return domain.JournalEntry{}, s.observe(ctx, KindJournalEntry, "create", fmt.Errorf("service.DataService.CreateJournalEntry: %w", err))
	}
	s.observe(ctx, KindJournalEntry, "create", nil)
	return created, nil
}

// JournalEntry returns a single entry.
func (s *DataService) JournalEntry(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error) {
	e, err := s.repos().Journal.GetByID(ctx, id)
	if err != nil {
		return domain.JournalEntry{}, s.observe(ctx, KindJournalEntry, "get", fmt.Errorf("service.DataService.JournalEntry: %w", err))
	}
	return e, nil
}

// JournalEntries returns every entry, newest first.
func (s *DataService) JournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.repos().Journal.List(ctx)
	if err != nil {
		return nil, s.observe(ctx, KindJournalEntry, "list", fmt.Errorf("service.DataService.JournalEntries: %w", err))
	}
	return entries, nil
}

// SaveJournalEntry writes back an edited entry.
func (s *DataService) SaveJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	saved, err := s.repos().Journal.Update(ctx, e)
	if err != nil {
		return domain.JournalEntry{}, s.observe(ctx, KindJournalEntry, "save", fmt.Errorf("service.DataService.SaveJournalEntry: %w", err))
	}
	s.observe(ctx, KindJournalEntry, "save", nil)
	return saved, nil
}

// DeleteJournalEntry removes an entry.
func (s *DataService) DeleteJournalEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repos().Journal.Delete(ctx, id); err != nil {
		return s.observe(ctx, KindJournalEntry, "delete", fmt.Errorf("service.DataService.DeleteJournalEntry: %w", err))
	}
	s.observe(ctx, KindJournalEntry, "delete", nil)
	return nil
}

// ---- Itinerary -------------------------------------------------------------

// LoadItineraryItems returns the whole itinerary in list order.
func (s *DataService) LoadItineraryItems(ctx context.Context) ([]domain.ItineraryItem, error) {
	items, err := s.repos().Itinerary.List(ctx)
	if err != nil {
		return nil, s.observe(ctx, KindItineraryItem, "list", fmt.Errorf("service.DataService.LoadItineraryItems: %w", err))
	}
	return items, nil
}

// SaveItineraryItems replaces the whole itinerary with items, atomically.
// Items without an ID are given one; the stored list is returned.
func (s *DataService) SaveItineraryItems(ctx context.Context, items []domain.ItineraryItem) ([]domain.ItineraryItem, error) {
	var stored []domain.ItineraryItem
	err := s.store.InTx(ctx, func(r repo.Set) error {
		var err error
		stored, err = r.Itinerary.ReplaceAll(ctx, items)
		return err
	})
	if err != nil {
		return nil, s.observe(ctx, KindItineraryItem, "replace_all", fmt.Errorf("service.DataService.SaveItineraryItems: %w", err))
	}
	s.observe(ctx, KindItineraryItem, "replace_all", nil)
	return stored, nil
}

// ItineraryItem returns a single item.
func (s *DataService) ItineraryItem(ctx context.Context, id uuid.UUID) (domain.ItineraryItem, error) {
	item, err := s.repos().Itinerary.GetByID(ctx, id)
	if err != nil {
		return domain.ItineraryItem{}, s.observe(ctx, KindItineraryItem, "get", fmt.Errorf("service.DataService.ItineraryItem: %w", err))
	}
	return item, nil
}

// UpsertItineraryItem inserts or overwrites one item.
func (s *DataService) UpsertItineraryItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	stored, err := s.repos().Itinerary.Upsert(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, s.observe(ctx, KindItineraryItem, "upsert", fmt.Errorf("service.DataService.UpsertItineraryItem: %w", err))
	}
	s.observe(ctx, KindItineraryItem, "upsert", nil)
	return stored, nil
}

// DeleteItineraryItem removes one item.
func (s *DataService) DeleteItineraryItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repos().Itinerary.Delete(ctx, id); err != nil {
		return s.observe(ctx, KindItineraryItem, "delete", fmt.Errorf("service.DataService.DeleteItineraryItem: %w", err))
	}
	s.observe(ctx, KindItineraryItem, "delete", nil)
	return nil
}

// TripItinerary returns the items naming tripID, earliest first.
// The trip itself is not looked up: items of a deleted trip are still listed.
func (s *DataService) TripItinerary(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	items, err := s.repos().Itinerary.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, s.observe(ctx, KindItineraryItem, "list", fmt.Errorf("service.DataService.TripItinerary: %w", err))
	}
	return items, nil
}

// ImportLegacyItinerary moves items kept in the single-blob preference list
// into the itinerary table, appending them after existing items (an item
// whose ID already exists is overwritten), then clears the blob. It returns
// how many items were imported; an absent or undecodable blob imports none
// and is left untouched.
func (s *DataService) ImportLegacyItinerary(ctx context.Context) (int, error) {
	var imported int
	err := s.store.InTx(ctx, func(r repo.Set) error {
		list := prefs.NewListStore(r.Preferences, s.log)
		items, err := list.LoadList(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for _, item := range items {
			if _, err := r.Itinerary.Upsert(ctx, item); err != nil {
				return err
			}
		}
		imported = len(items)
		return list.Clear(ctx)
	})
	if err != nil {
		return 0, s.observe(ctx, KindItineraryList, "import", fmt.Errorf("service.DataService.ImportLegacyItinerary: %w", err))
	}
	s.observe(ctx, KindItineraryList, "import", nil)
	if imported > 0 {
		s.log.InfoContext(ctx, "imported legacy itinerary list", "items", imported)
	}
	return imported, nil
}

// ExportLegacyItinerary writes the current itinerary into the single-blob
// preference list, overwriting it, and returns how many items were written.
func (s *DataService) ExportLegacyItinerary(ctx context.Context) (int, error) {
	var exported int
	err := s.store.InTx(ctx, func(r repo.Set) error {
		items, err := r.Itinerary.List(ctx)
		if err != nil {
			return err
		}
		exported = len(items)
		return prefs.NewListStore(r.Preferences, s.log).SaveList(ctx, items)
	})
	if err != nil {
		return 0, s.observe(ctx, KindItineraryList, "export", fmt.Errorf("service.DataService.ExportLegacyItinerary: %w", err))
	}
	s.observe(ctx, KindItineraryList, "export", nil)
	return exported, nil
}

// ---- Settings & wipe -------------------------------------------------------

// Settings returns the user's display preferences.
func (s *DataService) Settings() *prefs.Settings {
	return prefs.NewSettings(s.repos().Preferences)
}

// DeleteAllData removes every trip, activity, expense, journal entry and
// itinerary item, plus the legacy itinerary blob. Settings are kept.
//
// Each kind is wiped on its own: a failure is logged and counted, the
// remaining kinds are still wiped, and all failures come back combined.
func (s *DataService) DeleteAllData(ctx context.Context) error {
	r := s.repos()
	list := prefs.NewListStore(r.Preferences, s.log)

	steps := []struct {
		kind string
		run  func(context.Context) (int64, error)
	}{
		{KindTrip, r.Trips.DeleteAll},
		{KindActivity, r.Activities.DeleteAll},
		{KindExpense, r.Expenses.DeleteAll},
		{KindJournalEntry, r.Journal.DeleteAll},
		{KindItineraryItem, r.Itinerary.DeleteAll},
		{KindItineraryList, func(ctx context.Context) (int64, error) { return 0, list.Clear(ctx) }},
	}

	var errs error
	for _, step := range steps {
		n, err := step.run(ctx)
		s.observe(ctx, step.kind, "delete_all", err)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.metrics.Wiped(step.kind, n)
	}
	if errs != nil {
		return fmt.Errorf("service.DataService.DeleteAllData: %w", errs)
	}
	s.log.InfoContext(ctx, "all data deleted")
	return nil
}
