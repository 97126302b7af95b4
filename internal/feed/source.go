// Package feed loads the three CSV feeds and normalizes their records into
// per-customer monthly rows.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source yields the raw CSV text of one feed. Feeds are published as static
// assets, so a source is either an HTTP URL or a local file path.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// NewSource picks the source type from the location scheme.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &httpSource{
			url:    location,
			client: &http.Client{Timeout: timeout},
		}
	}
	return fileSource(location)
}

type fileSource string

func (f fileSource) Fetch(_ context.Context) (string, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return "", fmt.Errorf("read feed file: %w", err)
	}
	return string(b), nil
}

type httpSource struct {
	url    string
	client *http.Client
}

func (h *httpSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch feed %s: unexpected status %d", h.url, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}
	return string(b), nil
}
