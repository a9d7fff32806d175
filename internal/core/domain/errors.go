package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// Infrastructure faults are reported through StorageError.
var (
	// ErrStorageFailure indicates the durable medium could not complete an operation
	// (I/O error, corruption, resource exhaustion, permission denial).
	// The durable state is unchanged when this is returned from a mutation.
	ErrStorageFailure = errors.New("storage failure")

	// ErrClosed indicates the word store has been closed.
	ErrClosed = errors.New("word store closed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// StorageError wraps a fault raised by a storage adapter.
// It matches ErrStorageFailure under errors.Is and unwraps to the driver error.
type StorageError struct {
	// Op names the logical operation that failed (e.g. "inserting word").
	Op string

	// Err is the underlying driver error.
	Err error
}

// NewStorageError wraps err as a storage failure for op.
// Returns nil if err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrStorageFailure, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStorageFailure, e.Op, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStorageFailure.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}
