package service

import (
	"errors"
	"fmt"

	"rush-server/repository"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidRating    = errors.New("invalid rating")
	ErrEmptyNotes       = errors.New("no notes to save")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidState     = errors.New("invalid or expired sign-in state")
)

// BatchError reports the entry a sequential batch stopped at. Writes before it stay committed.
type BatchError struct {
	Op        string
	Key       string
	Committed int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: entry %q failed after %d committed writes: %v", e.Op, e.Key, e.Committed, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
