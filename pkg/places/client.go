// Package places provides a client for the Foursquare places-search API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the places-search operation used by the dining and bars
// fetchers.
type Client interface {
	// Search returns places near a coordinate matching the category filter.
	Search(ctx context.Context, q SearchQuery) ([]Place, error)
}

// SearchQuery holds the parameters for one places search.
type SearchQuery struct {
	Lat        float64
	Lng        float64
	Categories []string
	Limit      int
}

// Place is a single venue from the search response. Rating is on the
// upstream's 0-10 scale; Price is an integer tier 1-4, 0 when absent.
type Place struct {
	Name       string     `json:"name"`
	Location   Location   `json:"location"`
	Rating     float64    `json:"rating"`
	Price      int        `json:"price"`
	Categories []Category `json:"categories"`
	Stats      Stats      `json:"stats"`
	Link       string     `json:"link"`
}

// Location holds the venue address.
type Location struct {
	FormattedAddress string `json:"formatted_address"`
}

// Category is one venue category label.
type Category struct {
	Name string `json:"name"`
}

// Stats holds venue aggregate counts.
type Stats struct {
	TotalRatings int `json:"total_ratings"`
}

type searchResponse struct {
	Results []Place `json:"results"`
}

// Option configures the places client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new places-search client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.foursquare.com/v3/places",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, q SearchQuery) ([]Place, error) {
	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%.4f,%.4f", q.Lat, q.Lng))
	params.Set("categories", strings.Join(q.Categories, ","))
	params.Set("limit", strconv.Itoa(q.Limit))

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	return result.Results, nil
}
