// Package memory implements the settings store as an in-memory map backed
// by a JSON file keyed by owner identity.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"territory/internal/core"
	"territory/internal/settings"
)

type record struct {
	NETarget                float64 `json:"neTarget"`
	ConsumptionBaseline     float64 `json:"consumptionBaseline"`
	ConsumptionGrowthTarget float64 `json:"consumptionGrowthTarget"`
}

type Store struct {
	mu   sync.Mutex
	path string
	data map[string]record
}

var _ settings.Store = (*Store)(nil)

// NewFromFile loads the store's state from path. A missing file starts
// empty; it is created on the first write.
func NewFromFile(path string) *Store {
	s := &Store{path: path, data: make(map[string]record)}
	if b, err := os.ReadFile(path); err == nil {
		// A corrupt file starts empty rather than failing startup.
		_ = json.Unmarshal(b, &s.data)
	}
	if s.data == nil {
		s.data = make(map[string]record)
	}
	return s
}

func (s *Store) Get(_ context.Context, ownerID string) (core.TargetSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[ownerID]
	if !ok {
		return core.TargetSettings{}, settings.ErrNotFound
	}
	return core.TargetSettings{
		OwnerID:                 ownerID,
		NETarget:                rec.NETarget,
		ConsumptionBaseline:     rec.ConsumptionBaseline,
		ConsumptionGrowthTarget: rec.ConsumptionGrowthTarget,
	}, nil
}

func (s *Store) Put(_ context.Context, ts core.TargetSettings) error {
	if err := ts.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[ts.OwnerID] = record{
		NETarget:                ts.NETarget,
		ConsumptionBaseline:     ts.ConsumptionBaseline,
		ConsumptionGrowthTarget: ts.ConsumptionGrowthTarget,
	}
	return s.persist()
}

func (s *Store) Delete(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[ownerID]; !ok {
		return settings.ErrNotFound
	}
	delete(s.data, ownerID)
	return s.persist()
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
