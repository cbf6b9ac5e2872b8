package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in the store, or when a child record names a parent
// trip that does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input breaks one of the few rules the data
// layer enforces: a missing required field, an activity without a trip, a
// malformed currency code. Everything else is accepted as given.
var ErrValidation = errors.New("validation error")
