package repository

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound = errors.New("event not found")
)

// StoreError classifies a persistence failure: the underlying store was
// unreachable or rejected the operation. Callers may retry; this layer
// never does.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("event store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
