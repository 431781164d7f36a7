package state

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// StatePath is the single endpoint the store exposes. The whole document
// travels on every request; there are no partial updates.
const StatePath = "/api/state"

// Client talks to the remote state endpoint: GET loads the full document,
// POST overwrites it.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Load fetches the stored document. Transport failures and non-200
// responses surface as errors so the caller can show a failed-to-load
// state; an unreadable body degrades to the default empty store.
func (c *Client) Load(ctx context.Context) (*HistoryStore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+StatePath, nil)
	if err != nil {
		return nil, fmt.Errorf("state load request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("state load: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("state load: unexpected status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("state load body: %w", err)
	}
	return Decode(raw), nil
}

// Save overwrites the stored document with the given one.
func (c *Client) Save(ctx context.Context, s *HistoryStore) error {
	raw, err := s.Encode()
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+StatePath, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("state save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("state save: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("state save: unexpected status %d", resp.StatusCode)
	}
	return nil
}
