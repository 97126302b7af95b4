package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"territory/internal/core"
	"territory/internal/settings"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "territory.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "o@example.com"); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	first := core.TargetSettings{OwnerID: "o@example.com", NETarget: 100000, ConsumptionBaseline: 600000, ConsumptionGrowthTarget: 600000}
	if err := repo.Put(ctx, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.Get(ctx, "o@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != first {
		t.Fatalf("got %+v, want %+v", got, first)
	}

	second := first
	second.NETarget = 250000
	if err := repo.Put(ctx, second); err != nil {
		t.Fatalf("put update: %v", err)
	}
	got, err = repo.Get(ctx, "o@example.com")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got != second {
		t.Fatalf("upsert must overwrite: got %+v", got)
	}
}

func TestSQLiteRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Delete(ctx, "ghost"); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting missing record, got %v", err)
	}

	if err := repo.Put(ctx, core.TargetSettings{OwnerID: "o", NETarget: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "o"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "o"); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("record must be gone, got %v", err)
	}
}

func TestSQLiteRepositoryRejectsEmptyOwner(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Put(context.Background(), core.TargetSettings{}); !errors.Is(err, core.ErrEmptyOwner) {
		t.Fatalf("expected ErrEmptyOwner, got %v", err)
	}
}
