package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"territory/internal/core"
	"territory/internal/settings"
	"territory/internal/settings/memory"
)

func newTestSettingsService(t *testing.T, debounce time.Duration) (*SettingsService, *memory.Store) {
	t.Helper()
	store := memory.NewFromFile(t.TempDir() + "/userData.json")
	svc := NewSettingsService(store, nil, debounce, testLogger())
	t.Cleanup(func() { svc.Close() })
	return svc, store
}

func TestSettingsServiceSaveWriteThrough(t *testing.T) {
	svc, _ := newTestSettingsService(t, 0)
	ctx := context.Background()

	want := core.TargetSettings{OwnerID: testOwner, NETarget: 100000}
	if err := svc.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Get(ctx, testOwner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSettingsServiceSaveCoalesces(t *testing.T) {
	svc, store := newTestSettingsService(t, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		s := core.TargetSettings{OwnerID: testOwner, NETarget: float64(i * 1000)}
		if err := svc.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	// Nothing lands until the pending write fires.
	if _, err := store.Get(ctx, testOwner); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected no write before flush, got %v", err)
	}

	svc.Flush()
	got, err := store.Get(ctx, testOwner)
	if err != nil {
		t.Fatalf("get after flush: %v", err)
	}
	if got.NETarget != 5000 {
		t.Fatalf("coalesced write must keep the last value, got %v", got.NETarget)
	}
}

func TestSettingsServiceSaveRejectsEmptyOwner(t *testing.T) {
	svc, _ := newTestSettingsService(t, 0)
	err := svc.Save(context.Background(), core.TargetSettings{})
	if !errors.Is(err, core.ErrEmptyOwner) {
		t.Fatalf("expected ErrEmptyOwner, got %v", err)
	}
}

func TestSettingsServiceDelete(t *testing.T) {
	svc, _ := newTestSettingsService(t, 0)
	ctx := context.Background()

	if err := svc.Delete(ctx, "ghost"); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Save(ctx, core.TargetSettings{OwnerID: testOwner, NETarget: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, testOwner); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, testOwner); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("settings must be gone, got %v", err)
	}
}

func TestSettingsServiceGetServesPending(t *testing.T) {
	svc, store := newTestSettingsService(t, time.Hour)
	ctx := context.Background()

	want := core.TargetSettings{OwnerID: testOwner, NETarget: 250000}
	if err := svc.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The store has not been written, yet the service already serves the
	// saved value.
	if _, err := store.Get(ctx, testOwner); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("store must be untouched inside the window, got %v", err)
	}
	got, err := svc.Get(ctx, testOwner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSettingsServiceDeleteDiscardsPending(t *testing.T) {
	svc, store := newTestSettingsService(t, time.Hour)
	ctx := context.Background()

	if err := svc.Save(ctx, core.TargetSettings{OwnerID: testOwner, NETarget: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, testOwner); err != nil {
		t.Fatalf("delete of a pending-only record: %v", err)
	}

	// The discarded save must not come back through a later flush.
	svc.Flush()
	if _, err := store.Get(ctx, testOwner); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("deleted settings resurfaced, got %v", err)
	}
	if _, err := svc.Get(ctx, testOwner); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("service must report the record gone, got %v", err)
	}
}
