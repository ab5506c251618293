package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/config"
	"github.com/socal-deals/deals-cli/internal/credential"
	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/pkg/ticketmaster"
)

// EventCityResult is the outcome of one per-city events query: normalized
// records, or a skip reason that leaves the remaining cities untouched.
type EventCityResult struct {
	City    string
	Records []model.EventRecord
	Skip    string
}

// EventsFetcher queries upcoming events for each configured city.
type EventsFetcher struct {
	client ticketmaster.Client
	key    credential.Credential
	cfg    config.EventsConfig
	now    func() time.Time
}

// NewEventsFetcher creates an events fetcher.
func NewEventsFetcher(client ticketmaster.Client, key credential.Credential, cfg config.EventsConfig, opts ...Option) *EventsFetcher {
	o := buildOptions(opts)
	return &EventsFetcher{
		client: client,
		key:    key,
		cfg:    cfg,
		now:    o.now,
	}
}

// Fetch returns events for all configured cities. A missing credential or an
// empty aggregate degrades to the fixed sample set.
func (f *EventsFetcher) Fetch(ctx context.Context) []model.EventRecord {
	log := zap.L().With(zap.String("fetcher", "events"))

	if !f.key.Available() {
		log.Warn("ticketmaster credential not set, using sample data")
		return SampleEvents(f.now())
	}

	records := make([]model.EventRecord, 0, len(f.cfg.Cities)*f.cfg.PerCity)
	for _, city := range f.cfg.Cities {
		res := f.fetchCity(ctx, city)
		if res.Skip != "" {
			log.Warn("city skipped",
				zap.String("city", res.City),
				zap.String("reason", res.Skip),
			)
			continue
		}
		records = append(records, res.Records...)
	}

	if len(records) == 0 {
		log.Warn("no live events found, using sample data")
		return SampleEvents(f.now())
	}

	log.Info("events fetched", zap.Int("count", len(records)))
	return records
}

// fetchCity issues one search and normalizes up to PerCity events.
func (f *EventsFetcher) fetchCity(ctx context.Context, city config.EventCity) EventCityResult {
	res := EventCityResult{City: city.Name}

	now := f.now()
	events, err := f.client.SearchEvents(ctx, ticketmaster.EventQuery{
		City:      city.Name,
		StateCode: city.State,
		StartTime: now,
		EndTime:   now.AddDate(0, 0, f.cfg.WindowDays),
		Size:      f.cfg.PageSize,
	})
	if err != nil {
		res.Skip = err.Error()
		return res
	}

	if len(events) > f.cfg.PerCity {
		events = events[:f.cfg.PerCity]
	}
	for _, ev := range events {
		res.Records = append(res.Records, normalizeEvent(ev, city.Name))
	}
	return res
}

// normalizeEvent maps one upstream event onto an EventRecord, substituting
// placeholders for the nested fields the upstream omits.
func normalizeEvent(ev ticketmaster.Event, city string) model.EventRecord {
	rec := model.EventRecord{
		Name:     ev.Name,
		City:     city,
		Venue:    "TBD",
		Date:     ev.Dates.Start.LocalDate,
		Time:     "TBD",
		Category: "Event",
		URL:      ev.URL,
	}

	if venue := ev.VenueName(); venue != "" {
		rec.Venue = venue
	}
	if ev.Dates.Start.LocalTime != "" {
		rec.Time = ev.Dates.Start.LocalTime
	}
	if len(ev.PriceRanges) > 0 {
		rec.PriceMin = ev.PriceRanges[0].Min
		rec.PriceMax = ev.PriceRanges[0].Max
	}
	if len(ev.Classifications) > 0 && ev.Classifications[0].Segment != nil && ev.Classifications[0].Segment.Name != "" {
		rec.Category = ev.Classifications[0].Segment.Name
	}
	if len(ev.Images) > 0 {
		rec.ImageURL = ev.Images[0].URL
	}
	return rec
}
