package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

// FileBackend keeps one file per storage key in a directory. Keys ending in
// .yaml or .yml are written as YAML, everything else as JSON.
type FileBackend struct {
	dir string
	mu  sync.RWMutex
}

// NewFileBackend returns a backend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("file backend requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(b.dir, key), nil
}

// Load implements Backend.
func (b *FileBackend) Load(_ context.Context, key string) (map[string]any, bool, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, err)
	}

	b.mu.RLock()
	data, err := os.ReadFile(path)
	b.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, err)
	}

	out := map[string]any{}
	if isYAML(key) {
		err = yaml.Unmarshal(data, &out)
	} else if len(strings.TrimSpace(string(data))) > 0 {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, deckerrors.NewParseError(path, 0, err))
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, true, nil
}

// Save implements Backend. The file is replaced atomically.
func (b *FileBackend) Save(_ context.Context, key string, data map[string]any) error {
	path, err := b.path(key)
	if err != nil {
		return deckerrors.NewPersistenceError("save", key, err)
	}

	var encoded []byte
	if isYAML(key) {
		encoded, err = yaml.Marshal(data)
	} else {
		encoded, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return deckerrors.NewPersistenceError("save", key, fmt.Errorf("failed to encode settings: %w", err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, encoded, 0o644); err != nil {
		return deckerrors.NewPersistenceError("save", key, fmt.Errorf("failed to write temporary file: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return deckerrors.NewPersistenceError("save", key, fmt.Errorf("failed to rename temporary file: %w", err))
	}
	return nil
}

// Remove implements Backend.
func (b *FileBackend) Remove(_ context.Context, key string) error {
	path, err := b.path(key)
	if err != nil {
		return deckerrors.NewPersistenceError("remove", key, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return deckerrors.NewPersistenceError("remove", key, err)
	}
	return nil
}

// Close implements Backend.
func (b *FileBackend) Close() error {
	return nil
}

func isYAML(key string) bool {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
