// Package ticketmaster provides a client for the Ticketmaster Discovery API.
package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the events-discovery operations used by the events fetcher.
type Client interface {
	// SearchEvents returns upcoming events for a city within a date window,
	// soonest first. A city with no events yields an empty slice, not an error.
	SearchEvents(ctx context.Context, q EventQuery) ([]Event, error)
}

// EventQuery holds the parameters for one events search.
type EventQuery struct {
	City      string
	StateCode string
	StartTime time.Time
	EndTime   time.Time
	Size      int
}

// Event is a single event from the discovery response. Nested fields are
// pointers or slices because the upstream omits them freely.
type Event struct {
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	Images          []Image          `json:"images"`
	Dates           Dates            `json:"dates"`
	PriceRanges     []PriceRange     `json:"priceRanges"`
	Classifications []Classification `json:"classifications"`
	Embedded        *EventEmbedded   `json:"_embedded"`
}

// Image is an event image reference.
type Image struct {
	URL string `json:"url"`
}

// Dates holds the event start information.
type Dates struct {
	Start Start `json:"start"`
}

// Start is the event's local start date and time.
type Start struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
}

// PriceRange is a min/max ticket price band.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Classification categorizes an event by segment.
type Classification struct {
	Segment *Segment `json:"segment"`
}

// Segment is a top-level event category such as Sports or Music.
type Segment struct {
	Name string `json:"name"`
}

// EventEmbedded carries the venues nested under an event.
type EventEmbedded struct {
	Venues []Venue `json:"venues"`
}

// Venue is an event venue.
type Venue struct {
	Name string `json:"name"`
}

// VenueName returns the first venue's name, or empty when none.
func (e Event) VenueName() string {
	if e.Embedded == nil || len(e.Embedded.Venues) == 0 {
		return ""
	}
	return e.Embedded.Venues[0].Name
}

type searchResponse struct {
	Embedded *struct {
		Events []Event `json:"events"`
	} `json:"_embedded"`
}

// Option configures the Ticketmaster client.
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

// NewClient creates a new Ticketmaster Discovery client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://app.ticketmaster.com",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchEvents(ctx context.Context, q EventQuery) ([]Event, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("city", q.City)
	params.Set("stateCode", q.StateCode)
	params.Set("startDateTime", q.StartTime.UTC().Format("2006-01-02T15:04:05Z"))
	params.Set("endDateTime", q.EndTime.UTC().Format("2006-01-02T15:04:05Z"))
	params.Set("size", strconv.Itoa(q.Size))
	params.Set("sort", "date,asc")

	reqURL := fmt.Sprintf("%s/discovery/v2/events.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "ticketmaster: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ticketmaster: request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ticketmaster: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("ticketmaster: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "ticketmaster: unmarshal response")
	}

	// Cities with no upcoming events come back without _embedded at all.
	if result.Embedded == nil {
		return nil, nil
	}

	return result.Embedded.Events, nil
}
