// Package quote provides a small client for the quote-lookup service: a
// single GET endpoint authenticated with a static Bearer token.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Quote is the payload returned by the quote service.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Options configure the quote client.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client calls the quote service. Safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constructs a client for the service at baseURL authenticating
// with the given Bearer token.
func NewClient(baseURL, token string, optFns ...func(o *Options)) *Client {
	opts := Options{Timeout: 10 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{baseURL: baseURL, token: token, httpClient: httpClient}
}

// Random fetches a quote from the service.
func (c *Client) Random(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quote", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote service request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote service returned status %d", resp.StatusCode)
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if q.Text == "" {
		return nil, fmt.Errorf("quote service returned an empty quote")
	}

	return &q, nil
}
