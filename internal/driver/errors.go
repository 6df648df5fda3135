package driver

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a query that requires a result returns no records.
var ErrNotFound = errors.New("not found")

// StoreError wraps any failure reported by the graph store.
type StoreError struct {
	Query string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to execute query: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err (or anything it wraps) came from the store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
