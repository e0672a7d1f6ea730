// Package importer pulls task records from an external HTTP source and
// reconciles them into the task store, skipping titles that already exist.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phrazzld/tarefas-api/internal/config"
)

// maxBodyBytes caps the upstream response size.
const maxBodyBytes = 10 << 20

// ExternalRecord is one item of the upstream JSON array.
type ExternalRecord struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Source yields external records.
type Source interface {
	Fetch(ctx context.Context) ([]ExternalRecord, error)
}

// HTTPSource fetches records with a GET request to a fixed URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// Ensure HTTPSource implements Source interface
var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a source for cfg.SourceURL. A nil client gets one
// with cfg.Timeout.
func NewHTTPSource(cfg config.ImporterConfig, client *http.Client) *HTTPSource {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{url: cfg.SourceURL, client: client}
}

// Fetch implements Source. Transport errors, non-2xx responses and
// undecodable bodies are all reported as ErrUpstreamFetch.
func (s *HTTPSource) Fetch(ctx context.Context) ([]ExternalRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUpstreamFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstreamFetch, resp.StatusCode)
	}

	var records []ExternalRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrUpstreamFetch, err)
	}
	return records, nil
}
