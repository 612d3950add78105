// Package domain holds the error taxonomy shared by every service and
// adapter. Services wrap these sentinels with context; the HTTP layer
// matches them with errors.Is to pick a status code.
package domain

import "errors"

var (
	// ErrNotFound marks a missing resource, including resources hidden
	// from the requester.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a mutation attempted by someone other than the
	// resource's owner.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation marks rejected input.
	ErrValidation = errors.New("invalid input")

	// ErrUnauthenticated marks a request with no valid actor.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConflict marks a uniqueness violation, e.g. a taken username or
	// a duplicate follow edge.
	ErrConflict = errors.New("conflict")
)
