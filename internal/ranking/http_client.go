package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RankingsPath is the leaderboard endpoint served by Handler.
const RankingsPath = "/api/rankings"

// HTTPClient is a Store backed by a remote /api/rankings endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Store = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the server at baseURL. A nil client
// uses one with a 5 second timeout.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// wireEntry is the JSON shape of the API. Level may be missing.
type wireEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level int    `json:"level,omitempty"`
}

func (w wireEntry) entry() Entry {
	level := w.Level
	if level <= 0 {
		level = 1
	}
	return Entry{Name: w.Name, Score: w.Score, Level: level}
}

// Top fetches up to n entries ordered by score descending.
func (c *HTTPClient) Top(ctx context.Context, n int) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+RankingsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("ranking: cannot build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ranking: cannot fetch rankings: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ranking: fetch rankings: %s: %w", statusError(resp), ErrUnavailable)
	}

	var wire []wireEntry
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("ranking: cannot decode rankings: %w", err)
	}

	entries := make([]Entry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, w.entry())
	}
	entries = normalize(entries)
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Submit posts one entry.
func (c *HTTPClient) Submit(ctx context.Context, e Entry) error {
	body, err := json.Marshal(wireEntry{Name: e.Name, Score: e.Score, Level: e.Level})
	if err != nil {
		return fmt.Errorf("ranking: cannot encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RankingsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ranking: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ranking: cannot submit ranking: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ranking: submit ranking: %s: %w", statusError(resp), ErrUnavailable)
	}
	return nil
}

// statusError describes a non-OK response, preferring the API's error field.
func statusError(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
