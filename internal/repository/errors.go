package repository

import "errors"

// Sentinel errors surfaced by repositories so services can map them onto the
// HTTP error taxonomy.
var (
	// ErrDuplicateEmail reports a unique constraint hit on an email column.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotPending reports a lost compare-and-set on a join request status:
	// the row was no longer PENDING when the transition ran.
	ErrNotPending = errors.New("join request is not pending")

	// ErrLinkExists reports a duplicate many-to-many link row.
	ErrLinkExists = errors.New("link already exists")
)
