package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/aggregate"
	"github.com/socal-deals/deals-cli/internal/config"
	"github.com/socal-deals/deals-cli/internal/credential"
	"github.com/socal-deals/deals-cli/internal/fetch"
	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/internal/store"
	"github.com/socal-deals/deals-cli/pkg/amadeus"
	"github.com/socal-deals/deals-cli/pkg/places"
	"github.com/socal-deals/deals-cli/pkg/ticketmaster"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one aggregation pass and write the JSON documents",
	Long: `Run one aggregation pass: flights, hotels, events, dining, bars.

Fetchers whose upstream credential is missing degrade to fixed sample data
(flights, events) or an empty collection (dining, bars); a run never fails
because an upstream is down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "fetch"))

		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.Output.Dir
		}

		st, err := store.New(outDir)
		if err != nil {
			return eris.Wrap(err, "fetch: open output dir")
		}

		agg := buildAggregator(cfg, st)

		log.Info("starting fetch",
			zap.String("out", outDir),
			zap.Strings("origins", cfg.Flights.Origins),
			zap.Strings("destinations", cfg.Flights.Destinations),
		)

		if err := agg.Run(ctx); err != nil {
			return eris.Wrap(err, "fetch")
		}

		fmt.Println("Fetch complete")
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("out", "", "output directory (defaults to output.dir from config)")
	rootCmd.AddCommand(fetchCmd)
}

// buildAggregator wires clients, credentials, and fetchers from config.
func buildAggregator(cfg *config.Config, st *store.Store) *aggregate.Aggregator {
	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTP.TimeoutSecs) * time.Second}

	amadeusClient := amadeus.NewClient(cfg.Amadeus.Key, cfg.Amadeus.Secret,
		amadeus.WithBaseURL(cfg.Amadeus.BaseURL), amadeus.WithHTTPClient(httpClient))
	tmClient := ticketmaster.NewClient(cfg.Ticketmaster.Key,
		ticketmaster.WithBaseURL(cfg.Ticketmaster.BaseURL), ticketmaster.WithHTTPClient(httpClient))
	placesClient := places.NewClient(cfg.Places.Key,
		places.WithBaseURL(cfg.Places.BaseURL), places.WithHTTPClient(httpClient))

	placesKey := credential.New(cfg.Places.Key)

	return aggregate.New(
		fetch.NewFlightsFetcher(amadeusClient,
			credential.New(cfg.Amadeus.Key), credential.New(cfg.Amadeus.Secret), cfg.Flights),
		fetch.NewHotelsFetcher(),
		fetch.NewEventsFetcher(tmClient, credential.New(cfg.Ticketmaster.Key), cfg.Events),
		fetch.NewPlacesFetcher(placesClient, placesKey, model.PlaceTypeDining, cfg.Places),
		fetch.NewPlacesFetcher(placesClient, placesKey, model.PlaceTypeBars, cfg.Places),
		st,
		cfg.Flights.Origins,
		cfg.Flights.Destinations,
	)
}
