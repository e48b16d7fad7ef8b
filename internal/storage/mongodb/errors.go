package mongodb

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by every operation when the store was never
// configured or the connection could not be established.
var ErrUnavailable = errors.New("database not available")

// StoreError wraps a failed store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
