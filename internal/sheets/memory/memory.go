// Package memory provides an in-memory settings mirror used in tests and
// local development where no spreadsheet is available.
package memory

import (
	"context"
	"sync"

	"territory/internal/core"
	"territory/internal/sheets"
)

type Mirror struct {
	mu   sync.Mutex
	rows map[string]core.TargetSettings
}

var _ sheets.SettingsMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{rows: make(map[string]core.TargetSettings)}
}

func (m *Mirror) UpsertSettings(ctx context.Context, s core.TargetSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.OwnerID] = s
	return nil
}

func (m *Mirror) DeleteSettings(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, ownerID)
	return nil
}

// Get returns the mirrored settings for an owner, if present.
func (m *Mirror) Get(ownerID string) (core.TargetSettings, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[ownerID]
	return s, ok
}

// Len returns the number of mirrored rows.
func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
