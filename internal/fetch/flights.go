package fetch

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/config"
	"github.com/socal-deals/deals-cli/internal/credential"
	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/internal/schedule"
	"github.com/socal-deals/deals-cli/pkg/amadeus"
)

// hotThreshold is the savings percent at or above which a deal is flagged hot.
const hotThreshold = 35

// skipNoOffers marks a route that returned an empty offer list. Empty routes
// are normal and logged quieter than transport or parse failures.
const skipNoOffers = "no offers returned"

// RouteResult is the outcome of a single route/weekend search: either a
// priced deal or a skip reason. Skipping is part of the contract — one bad
// route must not cost the rest of the grid.
type RouteResult struct {
	Origin      string
	Destination string
	Deal        *model.FlightDeal
	Skip        string
}

// FlightsFetcher searches weekend round trips across an origin x destination
// grid and scores each cheapest offer against a synthetic original price.
type FlightsFetcher struct {
	client amadeus.Client
	key    credential.Credential
	secret credential.Credential
	cfg    config.FlightsConfig
	now    func() time.Time
}

// NewFlightsFetcher creates a flights fetcher.
func NewFlightsFetcher(client amadeus.Client, key, secret credential.Credential, cfg config.FlightsConfig, opts ...Option) *FlightsFetcher {
	o := buildOptions(opts)
	return &FlightsFetcher{
		client: client,
		key:    key,
		secret: secret,
		cfg:    cfg,
		now:    o.now,
	}
}

// Fetch returns up to MaxDeals flight deals, best savings first. Missing
// credentials, auth failure, or an empty aggregate all degrade to the fixed
// sample set; fetch itself never fails.
func (f *FlightsFetcher) Fetch(ctx context.Context) []model.FlightDeal {
	log := zap.L().With(zap.String("fetcher", "flights"))

	if !credential.PairAvailable(f.key, f.secret) {
		log.Warn("amadeus credentials not set, using sample data")
		return SampleFlights(f.now())
	}

	token, err := f.client.Token(ctx)
	if err != nil {
		log.Warn("amadeus auth failed, using sample data", zap.Error(err))
		return SampleFlights(f.now())
	}

	deals := make([]model.FlightDeal, 0, f.cfg.MaxDeals)
	for _, weekend := range schedule.NextWeekends(f.now(), f.cfg.Weekends) {
		for _, origin := range f.cfg.Origins {
			for _, dest := range f.cfg.Destinations {
				res := f.searchRoute(ctx, token, origin, dest, weekend)
				if res.Deal == nil {
					if res.Skip == skipNoOffers {
						log.Debug("route empty",
							zap.String("origin", res.Origin),
							zap.String("destination", res.Destination),
							zap.String("departure", weekend.Depart()),
						)
					} else {
						log.Warn("route skipped",
							zap.String("origin", res.Origin),
							zap.String("destination", res.Destination),
							zap.String("departure", weekend.Depart()),
							zap.String("reason", res.Skip),
						)
					}
					continue
				}

				deals = append(deals, *res.Deal)
				log.Debug("route priced",
					zap.String("origin", res.Origin),
					zap.String("destination", res.Destination),
					zap.Float64("price", res.Deal.Price),
					zap.Int("savings_percent", res.Deal.SavingsPercent),
				)
			}
		}
	}

	// Ties keep discovery order.
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].SavingsPercent > deals[j].SavingsPercent
	})
	if len(deals) > f.cfg.MaxDeals {
		deals = deals[:f.cfg.MaxDeals]
	}

	if len(deals) == 0 {
		log.Warn("no live flight deals found, using sample data")
		return SampleFlights(f.now())
	}

	log.Info("flight deals fetched", zap.Int("count", len(deals)))
	return deals
}

// searchRoute issues one offer search and scores the cheapest result.
func (f *FlightsFetcher) searchRoute(ctx context.Context, token, origin, dest string, weekend schedule.Weekend) RouteResult {
	res := RouteResult{Origin: origin, Destination: dest}

	offers, err := f.client.SearchOffers(ctx, token, amadeus.OfferQuery{
		Origin:      origin,
		Destination: dest,
		DepartDate:  weekend.Depart(),
		ReturnDate:  weekend.Return(),
		Adults:      1,
		Max:         f.cfg.MaxOffers,
		Currency:    f.cfg.Currency,
	})
	if err != nil {
		res.Skip = err.Error()
		return res
	}
	if len(offers) == 0 {
		res.Skip = skipNoOffers
		return res
	}

	// Offers arrive cheapest first; only the best one becomes a deal.
	best := offers[0]
	price, err := best.TotalAmount()
	if err != nil {
		res.Skip = err.Error()
		return res
	}

	original, savings, pct := f.score(price)
	res.Deal = &model.FlightDeal{
		Origin:         origin,
		Destination:    dest,
		Price:          price,
		OriginalPrice:  original,
		Airline:        best.Airline(),
		DepartureDate:  weekend.Depart(),
		ReturnDate:     weekend.Return(),
		Savings:        savings,
		SavingsPercent: pct,
		IsHot:          pct >= hotThreshold,
		FoundAt:        f.now().Format(time.RFC3339),
		BookingURL:     fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s/%s", origin, dest, weekend.Depart(), weekend.Return()),
	}
	return res
}

// score synthesizes an original price from the live fare via the configured
// markup factor and derives the savings figures from it.
func (f *FlightsFetcher) score(price float64) (original, savings float64, pct int) {
	original = round2(price * f.cfg.MarkupFactor)
	savings = round2(original - price)
	pct = int(math.Round(savings / original * 100))
	return original, savings, pct
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
