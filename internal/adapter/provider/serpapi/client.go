// Package serpapi implements the hotel provider port on top of the SerpAPI
// Google Hotels engine. It builds provider queries from search criteria,
// executes the primary call plus optional per-record address follow-ups, and
// normalizes the raw payload into domain records.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production SerpAPI endpoint.
const DefaultBaseURL = "https://serpapi.com/search.json"

// Client executes raw requests against the SerpAPI HTTP endpoint.
// It owns the access credential; callers never see the api_key parameter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client for the given endpoint and credential.
// The timeout bounds each individual HTTP call.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search executes a hotel search call with the given query parameters.
func (c *Client) Search(ctx context.Context, params url.Values) (*searchResponse, error) {
	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("provider rejected search: %s", resp.Error)
	}
	return &resp, nil
}

// PropertyDetails executes a per-record details call. The params must carry
// the record's property_token merged into the original search parameters.
func (c *Client) PropertyDetails(ctx context.Context, params url.Values) (*detailResponse, error) {
	var resp detailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("provider rejected details lookup: %s", resp.Error)
	}
	return &resp, nil
}

// get performs a GET with the credential attached and decodes the JSON body.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Set(key, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
