// Package aggregate runs all fetchers in order and persists their
// collections plus a run summary.
package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/internal/store"
)

// Output document names. The static site reads these paths verbatim.
const (
	FlightsFile  = "deals_data.json"
	HotelsFile   = "hotels_data.json"
	EventsFile   = "events_data.json"
	DiningFile   = "dining_data.json"
	BarsFile     = "bars_data.json"
	MetadataFile = "metadata.json"
)

// FlightSource produces the flight deal collection.
type FlightSource interface {
	Fetch(ctx context.Context) []model.FlightDeal
}

// HotelSource produces the hotel deal collection.
type HotelSource interface {
	Fetch(ctx context.Context) []model.HotelDeal
}

// EventSource produces the event collection.
type EventSource interface {
	Fetch(ctx context.Context) []model.EventRecord
}

// PlaceSource produces one place collection (dining or bars).
type PlaceSource interface {
	Fetch(ctx context.Context) []model.PlaceRecord
}

// Aggregator runs the fetchers sequentially and writes one document per
// collection. It never inspects whether a fetcher served live or sample
// data; that distinction stays inside the fetchers.
type Aggregator struct {
	flights      FlightSource
	hotels       HotelSource
	events       EventSource
	dining       PlaceSource
	bars         PlaceSource
	store        *store.Store
	origins      []string
	destinations []string
	now          func() time.Time
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source used for the metadata timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// New creates an Aggregator.
func New(flights FlightSource, hotels HotelSource, events EventSource, dining, bars PlaceSource, st *store.Store, origins, destinations []string, opts ...Option) *Aggregator {
	a := &Aggregator{
		flights:      flights,
		hotels:       hotels,
		events:       events,
		dining:       dining,
		bars:         bars,
		store:        st,
		origins:      origins,
		destinations: destinations,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one full aggregation: fetch every collection, write each
// document, then write the run metadata. Upstream failures were already
// absorbed by the fetchers; only document writes can fail the run.
func (a *Aggregator) Run(ctx context.Context) error {
	log := zap.L()
	runID := uuid.NewString()
	log.Info("aggregation run starting", zap.String("run_id", runID))

	flights := a.flights.Fetch(ctx)
	hotels := a.hotels.Fetch(ctx)
	events := a.events.Fetch(ctx)
	dining := a.dining.Fetch(ctx)
	bars := a.bars.Fetch(ctx)

	if err := a.store.WriteJSON(FlightsFile, flights); err != nil {
		return eris.Wrap(err, "aggregate: persist flights")
	}
	if err := a.store.WriteJSON(HotelsFile, hotels); err != nil {
		return eris.Wrap(err, "aggregate: persist hotels")
	}
	if err := a.store.WriteJSON(EventsFile, events); err != nil {
		return eris.Wrap(err, "aggregate: persist events")
	}
	if err := a.store.WriteJSON(DiningFile, dining); err != nil {
		return eris.Wrap(err, "aggregate: persist dining")
	}
	if err := a.store.WriteJSON(BarsFile, bars); err != nil {
		return eris.Wrap(err, "aggregate: persist bars")
	}

	meta := model.RunMetadata{
		RunID:        runID,
		LastUpdated:  a.now().Format(time.RFC3339),
		TotalFlights: len(flights),
		TotalHotels:  len(hotels),
		TotalEvents:  len(events),
		TotalDining:  len(dining),
		TotalBars:    len(bars),
		Origins:      a.origins,
		Destinations: a.destinations,
	}
	if err := a.store.WriteJSON(MetadataFile, meta); err != nil {
		return eris.Wrap(err, "aggregate: persist metadata")
	}

	log.Info("aggregation run complete",
		zap.String("run_id", runID),
		zap.Int("flights", meta.TotalFlights),
		zap.Int("hotels", meta.TotalHotels),
		zap.Int("events", meta.TotalEvents),
		zap.Int("dining", meta.TotalDining),
		zap.Int("bars", meta.TotalBars),
	)
	return nil
}
