package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Amadeus      AmadeusConfig      `yaml:"amadeus" mapstructure:"amadeus"`
	Ticketmaster TicketmasterConfig `yaml:"ticketmaster" mapstructure:"ticketmaster"`
	Places       PlacesConfig       `yaml:"places" mapstructure:"places"`
	Flights      FlightsConfig      `yaml:"flights" mapstructure:"flights"`
	Events       EventsConfig       `yaml:"events" mapstructure:"events"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// OutputConfig configures where the JSON documents land.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// HTTPConfig configures upstream HTTP behavior.
type HTTPConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AmadeusConfig holds flight-search API credentials and endpoint.
type AmadeusConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Secret  string `yaml:"secret" mapstructure:"secret"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// TicketmasterConfig holds events-discovery API settings.
type TicketmasterConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PlacesConfig holds places-search API settings and query parameters.
type PlacesConfig struct {
	Key              string      `yaml:"key" mapstructure:"key"`
	BaseURL          string      `yaml:"base_url" mapstructure:"base_url"`
	Limit            int         `yaml:"limit" mapstructure:"limit"`
	Cities           []PlaceCity `yaml:"cities" mapstructure:"cities"`
	DiningCategories []string    `yaml:"dining_categories" mapstructure:"dining_categories"`
	BarCategories    []string    `yaml:"bar_categories" mapstructure:"bar_categories"`
}

// PlaceCity is a city coordinate pair for places searches.
type PlaceCity struct {
	Name string  `yaml:"name" mapstructure:"name"`
	Lat  float64 `yaml:"lat" mapstructure:"lat"`
	Lng  float64 `yaml:"lng" mapstructure:"lng"`
}

// FlightsConfig configures the flight-deal search grid and scoring.
type FlightsConfig struct {
	Origins      []string `yaml:"origins" mapstructure:"origins"`
	Destinations []string `yaml:"destinations" mapstructure:"destinations"`
	Weekends     int      `yaml:"weekends" mapstructure:"weekends"`
	MaxOffers    int      `yaml:"max_offers" mapstructure:"max_offers"`
	MaxDeals     int      `yaml:"max_deals" mapstructure:"max_deals"`
	MarkupFactor float64  `yaml:"markup_factor" mapstructure:"markup_factor"`
	Currency     string   `yaml:"currency" mapstructure:"currency"`
}

// EventsConfig configures the events search window and city list.
type EventsConfig struct {
	Cities     []EventCity `yaml:"cities" mapstructure:"cities"`
	WindowDays int         `yaml:"window_days" mapstructure:"window_days"`
	PageSize   int         `yaml:"page_size" mapstructure:"page_size"`
	PerCity    int         `yaml:"per_city" mapstructure:"per_city"`
}

// EventCity is a city plus the state code the events upstream filters on.
type EventCity struct {
	Name  string `yaml:"name" mapstructure:"name"`
	State string `yaml:"state" mapstructure:"state"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DEALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("http.timeout_secs", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("amadeus.key", "")
	v.SetDefault("amadeus.secret", "")
	v.SetDefault("amadeus.base_url", "https://test.api.amadeus.com")
	v.SetDefault("ticketmaster.key", "")
	v.SetDefault("places.key", "")
	v.SetDefault("ticketmaster.base_url", "https://app.ticketmaster.com")
	v.SetDefault("places.base_url", "https://api.foursquare.com/v3/places")
	v.SetDefault("places.limit", 10)
	v.SetDefault("places.cities", defaultPlaceCities())
	v.SetDefault("places.dining_categories", []string{"13065"})
	v.SetDefault("places.bar_categories", []string{"13003", "13029"})
	v.SetDefault("flights.origins", []string{"LAX", "ONT", "SNA"})
	v.SetDefault("flights.destinations", []string{"LAS", "SFO", "PHX", "SEA", "DEN", "SAN"})
	v.SetDefault("flights.weekends", 3)
	v.SetDefault("flights.max_offers", 3)
	v.SetDefault("flights.max_deals", 50)
	v.SetDefault("flights.markup_factor", 1.35)
	v.SetDefault("flights.currency", "USD")
	v.SetDefault("events.cities", defaultEventCities())
	v.SetDefault("events.window_days", 14)
	v.SetDefault("events.page_size", 5)
	v.SetDefault("events.per_city", 3)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func defaultEventCities() []map[string]any {
	return []map[string]any{
		{"name": "Las Vegas", "state": "NV"},
		{"name": "San Francisco", "state": "CA"},
		{"name": "Phoenix", "state": "AZ"},
		{"name": "San Diego", "state": "CA"},
		{"name": "Los Angeles", "state": "CA"},
	}
}

func defaultPlaceCities() []map[string]any {
	return []map[string]any{
		{"name": "Las Vegas", "lat": 36.1699, "lng": -115.1398},
		{"name": "San Francisco", "lat": 37.7749, "lng": -122.4194},
		{"name": "Phoenix", "lat": 33.4484, "lng": -112.0740},
		{"name": "San Diego", "lat": 32.7157, "lng": -117.1611},
		{"name": "Los Angeles", "lat": 34.0522, "lng": -118.2437},
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
