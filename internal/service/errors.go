package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match with errors.Is; use errors.As for the typed wrappers.
var (
	ErrInvalidRating  = errors.New("invalid rating")
	ErrReviewRequired = errors.New("review required")
	ErrReviewTooLong  = errors.New("review too long")
	ErrStorage        = errors.New("feedback storage failed")
)

// ValidationError reports malformed submission input. It never reaches
// enrichment or storage.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError reports a store failure. Artifacts computed for the attempt
// are discarded.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
