package domain

import "errors"

// ErrSessionNotFound is returned when no selection session exists for an owner.
// It is an expected state (e.g. after a restart), not a failure.
var ErrSessionNotFound = errors.New("session not found")

// ErrUpstreamUnavailable is returned when the remote catalog cannot be reached,
// answers with a non-200 status, or sends a malformed payload.
var ErrUpstreamUnavailable = errors.New("upstream catalog unavailable")

// ErrNotFound is returned when the remote catalog has no entry for an id.
var ErrNotFound = errors.New("catalog entry not found")

// ErrOwnership is returned when a user acts on a session owned by someone else.
var ErrOwnership = errors.New("session belongs to another user")

// ErrMalformedToken is returned when a callback token cannot be decoded.
var ErrMalformedToken = errors.New("malformed callback token")

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)
