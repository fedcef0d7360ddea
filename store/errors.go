package store

import "errors"

var (
	// ErrNotFound is returned when the requested item doesn't exist.
	ErrNotFound = errors.New("store: item not found")

	// ErrTableNotFound is returned when DynamoDB reports the table as missing.
	ErrTableNotFound = errors.New("store: table not found")

	// ErrNoAttributes is returned when an update has nothing to set.
	ErrNoAttributes = errors.New("store: no attributes to update")
)
