package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vesaa/sysdash/internal/models"
)

// Fetcher retrieves one snapshot from the metrics endpoint.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.Snapshot, error)
}

// Client fetches snapshots over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a Client for url. A zero timeout means requests are
// bounded only by the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

// Fetch issues GET url and decodes the snapshot. Non-2xx responses become
// errors carrying the server's error message when one is present.
func (c *Client) Fetch(ctx context.Context) (*models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var snap *models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap == nil {
		return nil, errEmptySnapshot
	}
	return snap, nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("HTTP %d", resp.StatusCode)
}
