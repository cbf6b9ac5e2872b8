package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

// JournalStore is the part of the façade JournalService needs.
type JournalStore interface {
	CreateJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error)
	JournalEntry(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error)
	SaveJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error)
}

// JournalUpdate carries the editable fields of a journal entry.
// A nil Photo keeps the stored photo; RemovePhoto clears it.
type JournalUpdate struct {
	Title       string
	Content     string
	Date        time.Time
	Location    *string
	Photo       []byte
	RemovePhoto bool
}

// JournalService implements the journal rules on top of the façade.
type JournalService struct {
	store JournalStore
}

// NewJournalService constructs a JournalService backed by the provided store.
func NewJournalService(s JournalStore) *JournalService {
	return &JournalService{store: s}
}

// Add validates and persists a new entry, compressing its photo.
// Title and content are required; a zero Date means today.
func (s *JournalService) Add(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	e.Title = strings.TrimSpace(e.Title)
	if err := validateJournal(e.Title, e.Content); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Add: %w", err)
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	e.Photo = compressPhoto(e.Photo)
	return s.store.CreateJournalEntry(ctx, e)
}

// Update applies u to the entry with the given id.
// Returns domain.ErrNotFound if the entry does not exist.
func (s *JournalService) Update(ctx context.Context, id uuid.UUID, u JournalUpdate) (domain.JournalEntry, error) {
	u.Title = strings.TrimSpace(u.Title)
	if err := validateJournal(u.Title, u.Content); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Update: %w", err)
	}

	e, err := s.store.JournalEntry(ctx, id)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Update: %w", err)
	}
	e.Title = u.Title
	e.Content = u.Content
	e.Location = u.Location
	if !u.Date.IsZero() {
		e.Date = u.Date
	}
	switch {
	case u.RemovePhoto:
		e.Photo = nil
	case u.Photo != nil:
		e.Photo = compressPhoto(u.Photo)
	}
	return s.store.SaveJournalEntry(ctx, e)
}

func validateJournal(title, content string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return nil
}
