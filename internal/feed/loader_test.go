package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.csv")
	if err := os.WriteFile(path, []byte("A,B\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, err := NewSource(path, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A,B\n1,2\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("A,B\n1,2\n"))
	}))
	defer srv.Close()

	text, err := NewSource(srv.URL, 2*time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A,B\n1,2\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestHTTPSourceNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewSource(srv.URL, 2*time.Second).Fetch(context.Background()); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestLoaderDegradesFailedFeedToEmpty(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok-feed"))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	l := NewLoader(
		NewSource(good.URL, time.Second),
		NewSource(bad.URL, time.Second),
		NewSource(filepath.Join(t.TempDir(), "missing.csv"), time.Second),
		testLogger(),
	)
	raw, err := l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("loader must not fail on bad feeds: %v", err)
	}
	if raw.Consumption != "ok-feed" {
		t.Fatalf("good feed lost: %q", raw.Consumption)
	}
	if raw.NE != "" || raw.Workload != "" {
		t.Fatalf("failed feeds must be empty, got %q / %q", raw.NE, raw.Workload)
	}
}
