// Package persist stores settings data by storage key. It is the host-side
// persistence collaborator: the settings core never calls it directly.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Backend loads and saves loosely-typed settings data by storage key.
type Backend interface {
	// Load returns the data stored under key. ok is false when nothing is stored.
	Load(ctx context.Context, key string) (data map[string]any, ok bool, err error)
	// Save replaces the data stored under key.
	Save(ctx context.Context, key string, data map[string]any) error
	// Remove deletes the data stored under key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open returns the backend named kind rooted at path. For the file backend
// path is a directory, for sqlite it is the database file.
func Open(ctx context.Context, kind, path string) (Backend, error) {
	switch strings.ToLower(kind) {
	case KindFile, "":
		b, err := NewFileBackend(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindSQLite:
		b, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// normalize round-trips data through JSON so every backend hands back the
// same shapes (float64 numbers, map[string]any objects).
func normalize(data map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
