package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("model: validation failed")

	// ErrReference matches every *ReferenceError.
	ErrReference = errors.New("model: referenced entity not found")

	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("model: storage failure")
)

// ValidationError reports a field that violates its constraints.
// It is returned before the store is touched.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: invalid %s %s: %s", e.Entity, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError reports an entity that is unsaved or missing from the store.
// ID is zero when the entity was never persisted.
type ReferenceError struct {
	Entity string
	ID     int64
}

func (e *ReferenceError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("model: %s is not persisted", e.Entity)
	}
	return fmt.Sprintf("model: %s %d not found", e.Entity, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("model: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }
