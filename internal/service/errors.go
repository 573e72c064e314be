// Package service holds the booking lifecycle and query rules: creation
// preconditions, the WAITING→APPROVED/REJECTED transition, view-based
// listing, last/next availability resolution and comment eligibility.
// Services talk to storage through the narrow interfaces in stores.go and
// never cache records between calls.
package service

import "errors"

// Error kinds returned by the services.  Every check fails fast with the
// first violated condition wrapped around one of these sentinels; handlers
// use errors.Is to map a kind onto an HTTP status.  There is no fatal
// category; all failures are per-request.
var (
	// ErrNotFound covers missing users, items, bookings and requests.
	// Access-control failures are deliberately reported as not-found so
	// that a foreign resource is indistinguishable from an absent one.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation covers domain rule violations: bad time
	// ordering, unavailable item, already-decided booking, empty or
	// duplicate comment, commenting without a completed booking.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrUnsupportedView is returned for an unknown booking view string.
	// The message mirrors the wire contract expected by API clients.
	ErrUnsupportedView = errors.New("Unknown state: UNSUPPORTED_STATUS")

	// ErrInvalidPagination is returned when from < 0 or size <= 0.
	ErrInvalidPagination = errors.New("invalid pagination")
)
