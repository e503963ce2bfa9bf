package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// AI field suggestions are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Generation Errors.

	// ErrValidation indicates a field value failed its format rule in strict mode.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedFormat indicates an output format with no registered renderer.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrStorage indicates the output directory or metadata store could not be used.
	ErrStorage = errors.New("storage failure")

	// ErrReferenceCollision indicates no free reference id was found within the retry budget.
	ErrReferenceCollision = errors.New("reference id collision")
)

// ValidationError names the field, the violated rule and the offending raw value.
type ValidationError struct {
	Field string
	Rule  string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q violates rule %q (value %q)", e.Field, e.Rule, e.Value)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnsupportedFormatError is returned when no renderer exists for the requested format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q", e.Format)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// StorageError wraps an environment failure on a storage resource.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage %s %s failed", e.Op, e.Path)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// ReferenceCollisionError is returned after every allocation attempt hit an existing reference.
type ReferenceCollisionError struct {
	Attempts int
	Dir      string
}

func (e *ReferenceCollisionError) Error() string {
	return fmt.Sprintf("no free reference id in %s after %d attempts", e.Dir, e.Attempts)
}

// Is reports whether target is ErrReferenceCollision.
func (e *ReferenceCollisionError) Is(target error) bool {
	return target == ErrReferenceCollision
}
