package cli

import (
	"errors"
	"strings"

	"github.com/pkordes/travelmaster/internal/domain"
)

// Message turns a command error into the one line shown to the user.
// Missing records and rejected input drop the internal call-site prefixes;
// anything else is shown in full.
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid input: " + afterSentinel(err.Error(), domain.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}

// afterSentinel extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func afterSentinel(msg, prefix string) string {
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
