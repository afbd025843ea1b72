// Package zotero fetches a bibliographic corpus from a Zotero-compatible
// web API.
//
// Retrieval is paginated, but the engine only ever sees the assembled
// result: FetchAll returns one complete snapshot or an error, never a
// partial corpus. Timeout and rate limiting live here, at the
// collaborator boundary, not inside the resolution engine.
package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/bibwire/bibwire/internal/record"
)

const (
	// BaseURL is the Zotero web API base URL.
	BaseURL = "https://api.zotero.org"

	// PageSize is the per-request item limit (the API maximum is 100).
	PageSize = 100

	// RateLimit keeps well under the API's burst guidance.
	RateLimit = 5.0

	// MaxPages bounds runaway pagination against a misbehaving server.
	MaxPages = 1000
)

// Client is a rate-limited HTTP client for a Zotero-compatible API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new Zotero API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	// Check for API key in environment
	if key := os.Getenv("ZOTERO_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchAll retrieves every item in a user library and converts it to
// records. Any page failure fails the whole fetch: the caller never
// receives a partial snapshot.
func (c *Client) FetchAll(ctx context.Context, userID string) ([]record.Record, error) {
	var records []record.Record

	start := 0
	for page := 0; page < MaxPages; page++ {
		items, total, err := c.fetchPage(ctx, userID, start)
		if err != nil {
			return nil, fmt.Errorf("fetching items %d-%d: %w", start, start+PageSize, err)
		}

		for _, item := range items {
			if rec, ok := item.toRecord(); ok {
				records = append(records, rec)
			}
		}

		start += len(items)
		if start >= total || len(items) == 0 {
			return records, nil
		}
	}

	return nil, fmt.Errorf("pagination did not terminate after %d pages", MaxPages)
}

// fetchPage retrieves one page of items and the Total-Results count.
func (c *Client) fetchPage(ctx context.Context, userID string, start int) ([]Item, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	url := fmt.Sprintf("%s/users/%s/items?format=json&limit=%d&start=%d",
		c.baseURL, userID, PageSize, start)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.apiKey != "" {
		req.Header.Set("Zotero-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, fmt.Errorf("decoding response: %w", err)
	}

	total := start + len(items)
	if h := resp.Header.Get("Total-Results"); h != "" {
		if n, err := strconv.Atoi(h); err == nil {
			total = n
		}
	}

	return items, total, nil
}
