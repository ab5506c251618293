package fetch

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socal-deals/deals-cli/internal/config"
	"github.com/socal-deals/deals-cli/internal/credential"
	"github.com/socal-deals/deals-cli/pkg/amadeus"
)

// fixedNow is a Wednesday; the next weekend is Jan 3 (Fri) to Jan 5 (Sun).
var fixedNow = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func flightsConfig() config.FlightsConfig {
	return config.FlightsConfig{
		Origins:      []string{"LAX"},
		Destinations: []string{"LAS", "SFO"},
		Weekends:     1,
		MaxOffers:    3,
		MaxDeals:     50,
		MarkupFactor: 1.35,
		Currency:     "USD",
	}
}

// flightsServer simulates the token and offer-search endpoints. The respond
// func picks the search response body per destination.
func flightsServer(t *testing.T, tokenStatus int, respond func(dest string) (int, string)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(tokenStatus)
		if tokenStatus == http.StatusOK {
			_, _ = w.Write([]byte(`{"access_token": "tok-test"}`))
			return
		}
		_, _ = w.Write([]byte(`{"error": "invalid_client"}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		status, body := respond(r.URL.Query().Get("destinationLocationCode"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	return httptest.NewServer(mux)
}

func offerBody(total, airline string) string {
	return fmt.Sprintf(`{"data": [{"price": {"total": %q, "currency": "USD"}, "validatingAirlineCodes": [%q]}]}`, total, airline)
}

func TestFlightsFetchMissingCredentials(t *testing.T) {
	f := NewFlightsFetcher(nil, credential.New(""), credential.New(""), flightsConfig(), WithClock(fixedClock))

	deals := f.Fetch(context.Background())

	assert.Equal(t, SampleFlights(fixedNow), deals)
}

func TestFlightsFetchAuthFailure(t *testing.T) {
	srv := flightsServer(t, http.StatusUnauthorized, func(string) (int, string) {
		t.Error("search must not be called when auth fails")
		return http.StatusInternalServerError, `{}`
	})
	defer srv.Close()

	client := amadeus.NewClient("id", "secret", amadeus.WithBaseURL(srv.URL))
	f := NewFlightsFetcher(client, credential.New("id"), credential.New("secret"), flightsConfig(), WithClock(fixedClock))

	deals := f.Fetch(context.Background())

	assert.Equal(t, SampleFlights(fixedNow), deals)
}

func TestFlightsFetchLive(t *testing.T) {
	srv := flightsServer(t, http.StatusOK, func(dest string) (int, string) {
		switch dest {
		case "LAS":
			return http.StatusOK, offerBody("89.50", "WN")
		default:
			return http.StatusOK, offerBody("124.00", "UA")
		}
	})
	defer srv.Close()

	client := amadeus.NewClient("id", "secret", amadeus.WithBaseURL(srv.URL))
	f := NewFlightsFetcher(client, credential.New("id"), credential.New("secret"), flightsConfig(), WithClock(fixedClock))

	deals := f.Fetch(context.Background())
	require.Len(t, deals, 2)

	for _, d := range deals {
		assert.Equal(t, "LAX", d.Origin)
		assert.Equal(t, "2025-01-03", d.DepartureDate)
		assert.Equal(t, "2025-01-05", d.ReturnDate)
		assert.Equal(t, fmt.Sprintf("https://www.kayak.com/flights/LAX-%s/2025-01-03/2025-01-05", d.Destination), d.BookingURL)
		assert.Equal(t, fixedNow.Format(time.RFC3339), d.FoundAt)

		// Scoring invariants hold for every record.
		assert.InDelta(t, math.Round(d.Price*1.35*100)/100, d.OriginalPrice, 0.001)
		assert.InDelta(t, math.Round((d.OriginalPrice-d.Price)*100)/100, d.Savings, 0.001)
		assert.Equal(t, int(math.Round(d.Savings/d.OriginalPrice*100)), d.SavingsPercent)
		assert.Equal(t, d.SavingsPercent >= 35, d.IsHot)
	}

	assert.Equal(t, "WN", deals[0].Airline)
	assert.InDelta(t, 89.50, deals[0].Price, 0.001)
}

func TestFlightsFetchRouteFailureIsolated(t *testing.T) {
	srv := flightsServer(t, http.StatusOK, func(dest string) (int, string) {
		if dest == "LAS" {
			return http.StatusOK, `{warped json`
		}
		return http.StatusOK, offerBody("124.00", "UA")
	})
	defer srv.Close()

	client := amadeus.NewClient("id", "secret", amadeus.WithBaseURL(srv.URL))
	f := NewFlightsFetcher(client, credential.New("id"), credential.New("secret"), flightsConfig(), WithClock(fixedClock))

	deals := f.Fetch(context.Background())

	// The malformed LAS response costs only that route.
	require.Len(t, deals, 1)
	assert.Equal(t, "SFO", deals[0].Destination)
}

func TestFlightsFetchSortedAndTruncated(t *testing.T) {
	cfg := flightsConfig()
	cfg.Destinations = []string{"LAS", "SFO", "PHX"}
	cfg.MaxDeals = 2

	srv := flightsServer(t, http.StatusOK, func(dest string) (int, string) {
		return http.StatusOK, offerBody("100.00", "WN")
	})
	defer srv.Close()

	client := amadeus.NewClient("id", "secret", amadeus.WithBaseURL(srv.URL))
	f := NewFlightsFetcher(client, credential.New("id"), credential.New("secret"), cfg, WithClock(fixedClock))

	deals := f.Fetch(context.Background())

	require.Len(t, deals, 2)
	for i := 1; i < len(deals); i++ {
		assert.GreaterOrEqual(t, deals[i-1].SavingsPercent, deals[i].SavingsPercent)
	}
	// Ties keep discovery order.
	assert.Equal(t, "LAS", deals[0].Destination)
	assert.Equal(t, "SFO", deals[1].Destination)
}

func TestFlightsFetchZeroResultsFallsBack(t *testing.T) {
	srv := flightsServer(t, http.StatusOK, func(string) (int, string) {
		return http.StatusOK, `{"data": []}`
	})
	defer srv.Close()

	client := amadeus.NewClient("id", "secret", amadeus.WithBaseURL(srv.URL))
	f := NewFlightsFetcher(client, credential.New("id"), credential.New("secret"), flightsConfig(), WithClock(fixedClock))

	deals := f.Fetch(context.Background())

	assert.Equal(t, SampleFlights(fixedNow), deals)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		price        float64
		markup       float64
		wantOriginal float64
		wantSavings  float64
		wantPct      int
	}{
		{name: "markup_135", price: 100, markup: 1.35, wantOriginal: 135, wantSavings: 35, wantPct: 26},
		{name: "markup_140", price: 100, markup: 1.40, wantOriginal: 140, wantSavings: 40, wantPct: 29},
		{name: "fractional", price: 123.45, markup: 1.35, wantOriginal: 166.66, wantSavings: 43.21, wantPct: 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := flightsConfig()
			cfg.MarkupFactor = tt.markup
			f := NewFlightsFetcher(nil, credential.Credential{}, credential.Credential{}, cfg)

			original, savings, pct := f.score(tt.price)

			assert.InDelta(t, tt.wantOriginal, original, 0.001)
			assert.InDelta(t, tt.wantSavings, savings, 0.001)
			assert.Equal(t, tt.wantPct, pct)
		})
	}
}
