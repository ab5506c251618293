// Package amadeus provides a client for the Amadeus flight-offers search API.
package amadeus

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

// Client defines the Amadeus operations used by the flight fetcher.
type Client interface {
	// Token exchanges the client id/secret for a short-lived bearer token.
	Token(ctx context.Context) (string, error)
	// SearchOffers searches round-trip flight offers, cheapest first.
	SearchOffers(ctx context.Context, token string, q OfferQuery) ([]Offer, error)
}

// OfferQuery holds the parameters for one flight-offers search.
type OfferQuery struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
	Max         int
	Currency    string
}

// Offer is a single flight offer from the search response.
type Offer struct {
	Price                  OfferPrice `json:"price"`
	ValidatingAirlineCodes []string   `json:"validatingAirlineCodes"`
}

// OfferPrice holds the offer's total price. Amadeus sends decimal amounts as
// strings on the wire.
type OfferPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// TotalAmount parses the offer's total price.
func (o Offer) TotalAmount() (float64, error) {
	amount, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "amadeus: parse price %q", o.Price.Total)
	}
	return amount, nil
}

// Airline returns the first validating airline code, or empty when none.
func (o Offer) Airline() string {
	if len(o.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return o.ValidatingAirlineCodes[0]
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type offersResponse struct {
	Data []Offer `json:"data"`
}

// Option configures the Amadeus client.
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
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
}

// NewClient creates a new Amadeus client.
func NewClient(clientID, clientSecret string, opts ...Option) Client {
	c := &httpClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      "https://test.api.amadeus.com",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	reqURL := c.baseURL + "/v1/security/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "amadeus: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "amadeus: token request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "amadeus: read token response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("amadeus: token unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result tokenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", eris.Wrap(err, "amadeus: unmarshal token response")
	}
	if result.AccessToken == "" {
		return "", eris.New("amadeus: token response missing access_token")
	}

	return result.AccessToken, nil
}

func (c *httpClient) SearchOffers(ctx context.Context, token string, q OfferQuery) ([]Offer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartDate)
	params.Set("returnDate", q.ReturnDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("max", strconv.Itoa(q.Max))
	params.Set("currencyCode", q.Currency)

	reqURL := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "amadeus: create search request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "amadeus: search request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "amadeus: read search response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("amadeus: search unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result offersResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "amadeus: unmarshal search response")
	}

	return result.Data, nil
}
