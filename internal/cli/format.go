package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelmaster/internal/domain"
)

const dateLayout = "2006-01-02"

// parseID parses a command argument or flag as a record ID.
func parseID(what, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %q is not an id", domain.ErrValidation, what, s)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD flag value as midnight UTC. An empty value
// yields the zero time.
func parseDate(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s: want YYYY-MM-DD, got %q", domain.ErrValidation, flag, s)
	}
	return t, nil
}

// optString maps an empty flag value to nil.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseClock parses HH:MM as that time of day on day's date, UTC.
func parseClock(day time.Time, s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --time: want HH:MM, got %q", domain.ErrValidation, s)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
