package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSStore reads objects from a local directory.
type FSStore struct {
	Root string
}

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{Root: dir}
}

// Download reads path relative to the root. Paths escaping the root are rejected.
func (s *FSStore) Download(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Path: path, Message: "cancelled", Cause: err}
	}

	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if path == "" || strings.Contains(filepath.ToSlash(path), "../") || strings.HasSuffix(path, "..") {
		return nil, &Error{Path: path, Message: "path escapes storage root"}
	}
	full := filepath.Join(s.Root, clean)

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Path: path, Message: "file not found", Cause: ErrNotFound}
		}
		return nil, &Error{Path: path, Message: "failed to stat file", Cause: err}
	}
	if info.IsDir() {
		return nil, &Error{Path: path, Message: "path is a directory"}
	}
	if info.Size() > MaxObjectBytes {
		return nil, &Error{Path: path, Message: fmt.Sprintf("object exceeds %d bytes", MaxObjectBytes)}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}
