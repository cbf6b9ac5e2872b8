package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a standalone dated note with an optional photo.
// Photo holds the encoded image bytes inline; nil means no photo.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Location  *string   `json:"location,omitempty"`
	Photo     []byte    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
