package govdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// requestLimit keeps the odds of finding a usable record reasonable.
const requestLimit = 20

// ErrNoAPIKey is returned when GOVT_DATA_API is not configured.
var ErrNoAPIKey = errors.New("govdata: GOVT_DATA_API not set")

// Record is one raw row as returned by a data.gov.in resource.
type Record map[string]any

// Client queries api.data.gov.in resources.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a provider key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// FetchResource returns the records of resourceID matching filters.
// Zero records is not an error.
func (c *Client) FetchResource(ctx context.Context, resourceID string, filters map[string]string) ([]Record, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}

	params := url.Values{
		"api-key": {c.apiKey},
		"format":  {"json"},
		"limit":   {fmt.Sprint(requestLimit)},
	}
	for k, v := range filters {
		params.Set(fmt.Sprintf("filters[%s]", k), v)
	}

	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(resourceID), params.Encode())
	log.Printf("[GOV] request resource=%s filters=%v", resourceID, filters)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resource %s request: %w", resourceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("resource %s: status %d: %s", resourceID, resp.StatusCode, body)
	}

	var out struct {
		Records []Record `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("resource %s: decode response: %w", resourceID, err)
	}

	log.Printf("[GOV] resource=%s returned %d records", resourceID, len(out.Records))
	return out.Records, nil
}
