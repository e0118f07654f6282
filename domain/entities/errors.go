package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable marks any transport, auth, quota or timeout failure of the ledger store
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrMilestoneNotFound is returned when no row matches a removal request
	ErrMilestoneNotFound = errors.New("no matching milestone found")

	// ErrChannelUnavailable is returned when the announcement channel cannot be resolved
	ErrChannelUnavailable = errors.New("announcement channel unavailable")

	// ErrRowOutOfRange is returned when a positional delete targets the header or a missing row
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrReadOnlyTable is returned when a write targets a table the core does not own
	ErrReadOnlyTable = errors.New("table is read-only")
)

// StoreError wraps a failed ledger store call
type StoreError struct {
	Op    string // append, read_all or delete_row
	Table string
	Err   error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger store %s on %s failed: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is makes every StoreError match ErrStoreUnavailable
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewStoreError wraps err unless it is nil or already a StoreError
func NewStoreError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &StoreError{Op: op, Table: table, Err: err}
}
