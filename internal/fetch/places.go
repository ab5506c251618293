package fetch

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/config"
	"github.com/socal-deals/deals-cli/internal/credential"
	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/pkg/places"
)

// defaultPriceTier stands in when the upstream omits a venue's price tier.
const defaultPriceTier = 2

// placeLinkBase prefixes the relative venue links the upstream returns.
const placeLinkBase = "https://foursquare.com"

// PlaceCityResult is the outcome of one per-city places query.
type PlaceCityResult struct {
	City    string
	Records []model.PlaceRecord
	Skip    string
}

// PlacesFetcher queries dining or bar venues for each configured city
// coordinate. The two collections differ only in category filter and the
// type stamped on each record.
type PlacesFetcher struct {
	client places.Client
	key    credential.Credential
	kind   model.PlaceType
	cfg    config.PlacesConfig
}

// NewPlacesFetcher creates a places fetcher for one collection kind.
func NewPlacesFetcher(client places.Client, key credential.Credential, kind model.PlaceType, cfg config.PlacesConfig) *PlacesFetcher {
	return &PlacesFetcher{
		client: client,
		key:    key,
		kind:   kind,
		cfg:    cfg,
	}
}

// Fetch returns venues for all configured cities. Unlike flights and events,
// a missing credential yields an empty collection: these documents are
// optional enrichments with no sample fallback.
func (f *PlacesFetcher) Fetch(ctx context.Context) []model.PlaceRecord {
	log := zap.L().With(zap.String("fetcher", string(f.kind)))

	records := make([]model.PlaceRecord, 0, len(f.cfg.Cities)*f.cfg.Limit)
	if !f.key.Available() {
		log.Warn("places credential not set, skipping")
		return records
	}

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

	log.Info("places fetched", zap.Int("count", len(records)))
	return records
}

func (f *PlacesFetcher) fetchCity(ctx context.Context, city config.PlaceCity) PlaceCityResult {
	res := PlaceCityResult{City: city.Name}

	results, err := f.client.Search(ctx, places.SearchQuery{
		Lat:        city.Lat,
		Lng:        city.Lng,
		Categories: f.categories(),
		Limit:      f.cfg.Limit,
	})
	if err != nil {
		res.Skip = err.Error()
		return res
	}

	for _, p := range results {
		res.Records = append(res.Records, f.normalizePlace(p))
	}
	return res
}

func (f *PlacesFetcher) categories() []string {
	if f.kind == model.PlaceTypeBars {
		return f.cfg.BarCategories
	}
	return f.cfg.DiningCategories
}

// normalizePlace maps one upstream venue onto a PlaceRecord: rating rescaled
// from 0-10 to 0-5, price tier rendered as repeated currency symbols, and at
// most two category labels kept.
func (f *PlacesFetcher) normalizePlace(p places.Place) model.PlaceRecord {
	tier := p.Price
	if tier == 0 {
		tier = defaultPriceTier
	}

	categories := make([]string, 0, 2)
	for _, c := range p.Categories {
		if len(categories) == 2 {
			break
		}
		categories = append(categories, c.Name)
	}

	url := ""
	if p.Link != "" {
		url = placeLinkBase + p.Link
	}

	return model.PlaceRecord{
		Name:        p.Name,
		Location:    p.Location.FormattedAddress,
		Rating:      p.Rating / 2,
		PriceLevel:  strings.Repeat("$", tier),
		Categories:  categories,
		ReviewCount: p.Stats.TotalRatings,
		URL:         url,
		Type:        f.kind,
	}
}
