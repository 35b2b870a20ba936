package domain

import "errors"

// Sentinel errors shared by the persistence layer and the cascade engine.
// Repositories wrap these with context; callers match with errors.Is.
var (
	// ErrNotFound marks a referenced record that no longer exists. During
	// a cascade this is an expected condition, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a write rejected at the persistence boundary,
	// such as a date range with start after end.
	ErrValidation = errors.New("validation failed")
)
