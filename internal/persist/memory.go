package persist

import (
	"context"
	"sync"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

// MemoryBackend keeps data in process. Failures can be injected per operation.
type MemoryBackend struct {
	mu     sync.Mutex
	data   map[string]map[string]any
	failOn map[string]error
	saves  int
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data:   make(map[string]map[string]any),
		failOn: make(map[string]error),
	}
}

// FailOn makes every later call of op ("load", "save" or "remove") return
// err. A nil err clears the failure.
func (b *MemoryBackend) FailOn(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.failOn, op)
		return
	}
	b.failOn[op] = err
}

// Saves returns the number of successful saves.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// Load implements Backend.
func (b *MemoryBackend) Load(_ context.Context, key string) (map[string]any, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failOn["load"]; err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, err)
	}
	stored, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	out, err := normalize(stored)
	if err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, err)
	}
	return out, true, nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(_ context.Context, key string, data map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failOn["save"]; err != nil {
		return deckerrors.NewPersistenceError("save", key, err)
	}
	copied, err := normalize(data)
	if err != nil {
		return deckerrors.NewPersistenceError("save", key, err)
	}
	b.data[key] = copied
	b.saves++
	return nil
}

// Remove implements Backend.
func (b *MemoryBackend) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failOn["remove"]; err != nil {
		return deckerrors.NewPersistenceError("remove", key, err)
	}
	delete(b.data, key)
	return nil
}

// Close implements Backend.
func (b *MemoryBackend) Close() error {
	return nil
}
