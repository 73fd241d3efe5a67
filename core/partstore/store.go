package partstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/model"
)

// SkippedLine describes a persisted entry that could not be decoded.
type SkippedLine struct {
	Line   int    // 1-based line or row position in the backend
	Reason string // decode error
}

// LoadResult is the outcome of reading the whole store.
type LoadResult struct {
	Parts   []model.Part
	Skipped []SkippedLine
}

// Store persists the complete part list. Save always replaces the whole
// set; there is no partial update.
type Store interface {
	Load(ctx context.Context) (LoadResult, error)
	Save(ctx context.Context, parts []model.Part) error
	Close() error
}

var registry = factory.NewRegistry[Store]()

// Register adds a store backend factory identified by name.
func Register(name string, f factory.Factory[Store]) error {
	return registry.Register(name, f)
}

// New builds the store backend described by cfg.
func New(cfg factory.ModuleConfig) (Store, error) {
	s, err := registry.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("store %q: %w", cfg.Type, err)
	}
	return s, nil
}

// Backends lists the registered store types.
func Backends() []string { return registry.Names() }

func init() {
	_ = Register("memory", func(map[string]any) (Store, error) {
		return NewMemoryStore(), nil
	})
}

// MemoryStore keeps the part list in memory. It is used by tests and by
// dry runs that must not touch the disk.
type MemoryStore struct {
	mu    sync.Mutex
	parts []model.Part
	saves int
}

// NewMemoryStore returns a store seeded with parts.
func NewMemoryStore(parts ...model.Part) *MemoryStore {
	return &MemoryStore{parts: append([]model.Part(nil), parts...)}
}

// Load returns a copy of the stored parts.
func (s *MemoryStore) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LoadResult{Parts: append([]model.Part(nil), s.parts...)}, nil
}

// Save replaces the stored parts.
func (s *MemoryStore) Save(ctx context.Context, parts []model.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = append([]model.Part(nil), parts...)
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error { return nil }
