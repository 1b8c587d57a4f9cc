// Package storage downloads uploaded CV files from object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// MaxObjectBytes caps the size of a downloaded object.
const MaxObjectBytes = 20 << 20

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Store fetches stored objects by path.
type Store interface {
	Download(ctx context.Context, path string) ([]byte, error)
}

// Error represents a failed object download.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error for %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
