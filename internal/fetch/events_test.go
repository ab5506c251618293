package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socal-deals/deals-cli/internal/config"
	"github.com/socal-deals/deals-cli/internal/credential"
	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/pkg/ticketmaster"
)

func eventsConfig() config.EventsConfig {
	return config.EventsConfig{
		Cities: []config.EventCity{
			{Name: "Las Vegas", State: "NV"},
			{Name: "Phoenix", State: "AZ"},
		},
		WindowDays: 14,
		PageSize:   5,
		PerCity:    3,
	}
}

// eventsServer picks the response body per city.
func eventsServer(t *testing.T, respond func(city string) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, body := respond(r.URL.Query().Get("city"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

const vegasEventsBody = `{"_embedded": {"events": [
	{
		"name": "Cirque du Soleil - O",
		"url": "https://www.ticketmaster.com/event/1",
		"images": [{"url": "https://img.example.com/o.jpg"}],
		"dates": {"start": {"localDate": "2025-01-10", "localTime": "19:30"}},
		"priceRanges": [{"min": 99, "max": 250}],
		"classifications": [{"segment": {"name": "Arts & Theatre"}}],
		"_embedded": {"venues": [{"name": "Bellagio Hotel"}]}
	},
	{
		"name": "Mystery Show",
		"dates": {"start": {"localDate": "2025-01-11"}}
	}
]}}`

func TestEventsFetchMissingCredential(t *testing.T) {
	f := NewEventsFetcher(nil, credential.New(""), eventsConfig(), WithClock(fixedClock))

	events := f.Fetch(context.Background())

	assert.Equal(t, SampleEvents(fixedNow), events)
}

func TestEventsFetchLive(t *testing.T) {
	srv := eventsServer(t, func(city string) (int, string) {
		if city == "Las Vegas" {
			return http.StatusOK, vegasEventsBody
		}
		return http.StatusOK, `{"page": {"totalElements": 0}}`
	})
	defer srv.Close()

	client := ticketmaster.NewClient("key", ticketmaster.WithBaseURL(srv.URL))
	f := NewEventsFetcher(client, credential.New("key"), eventsConfig(), WithClock(fixedClock))

	events := f.Fetch(context.Background())
	require.Len(t, events, 2)

	full := events[0]
	assert.Equal(t, model.EventRecord{
		Name:     "Cirque du Soleil - O",
		City:     "Las Vegas",
		Venue:    "Bellagio Hotel",
		Date:     "2025-01-10",
		Time:     "19:30",
		PriceMin: 99,
		PriceMax: 250,
		Category: "Arts & Theatre",
		URL:      "https://www.ticketmaster.com/event/1",
		ImageURL: "https://img.example.com/o.jpg",
	}, full)

	// Missing nested fields get placeholders.
	sparse := events[1]
	assert.Equal(t, "TBD", sparse.Venue)
	assert.Equal(t, "TBD", sparse.Time)
	assert.Zero(t, sparse.PriceMin)
	assert.Zero(t, sparse.PriceMax)
	assert.Equal(t, "Event", sparse.Category)
	assert.Empty(t, sparse.URL)
	assert.Empty(t, sparse.ImageURL)
}

func TestEventsFetchPerCityCap(t *testing.T) {
	cfg := eventsConfig()
	cfg.PerCity = 1

	srv := eventsServer(t, func(city string) (int, string) {
		return http.StatusOK, vegasEventsBody
	})
	defer srv.Close()

	client := ticketmaster.NewClient("key", ticketmaster.WithBaseURL(srv.URL))
	f := NewEventsFetcher(client, credential.New("key"), cfg, WithClock(fixedClock))

	events := f.Fetch(context.Background())

	// One record per city despite two events in each response.
	require.Len(t, events, 2)
	assert.Equal(t, "Cirque du Soleil - O", events[0].Name)
	assert.Equal(t, "Cirque du Soleil - O", events[1].Name)
	assert.Equal(t, "Las Vegas", events[0].City)
	assert.Equal(t, "Phoenix", events[1].City)
}

func TestEventsFetchCityFailureIsolated(t *testing.T) {
	srv := eventsServer(t, func(city string) (int, string) {
		if city == "Las Vegas" {
			return http.StatusInternalServerError, `{"error": "boom"}`
		}
		return http.StatusOK, vegasEventsBody
	})
	defer srv.Close()

	client := ticketmaster.NewClient("key", ticketmaster.WithBaseURL(srv.URL))
	f := NewEventsFetcher(client, credential.New("key"), eventsConfig(), WithClock(fixedClock))

	events := f.Fetch(context.Background())

	// Vegas fails; Phoenix still delivers.
	require.Len(t, events, 2)
	assert.Equal(t, "Phoenix", events[0].City)
}

func TestEventsFetchEmptyFallsBack(t *testing.T) {
	srv := eventsServer(t, func(string) (int, string) {
		return http.StatusOK, `{"page": {"totalElements": 0}}`
	})
	defer srv.Close()

	client := ticketmaster.NewClient("key", ticketmaster.WithBaseURL(srv.URL))
	f := NewEventsFetcher(client, credential.New("key"), eventsConfig(), WithClock(fixedClock))

	events := f.Fetch(context.Background())

	assert.Equal(t, SampleEvents(fixedNow), events)
}
