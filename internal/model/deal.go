// Package model defines the normalized record shapes written to the output
// documents. Field order matters: encoding/json emits struct fields in
// declaration order, and the static site consuming these files relies on the
// published key order staying stable.
package model

// PlaceType discriminates the two place collections sharing PlaceRecord.
type PlaceType string

const (
	PlaceTypeDining PlaceType = "dining"
	PlaceTypeBars   PlaceType = "bars"
)

// FlightDeal is one scored round-trip weekend fare.
type FlightDeal struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"originalPrice"`
	Airline        string  `json:"airline"`
	DepartureDate  string  `json:"departureDate"`
	ReturnDate     string  `json:"returnDate"`
	Savings        float64 `json:"savings"`
	SavingsPercent int     `json:"savingsPercent"`
	IsHot          bool    `json:"isHot"`
	FoundAt        string  `json:"foundAt"`
	BookingURL     string  `json:"bookingUrl"`
}

// HotelDeal is one curated weekend hotel rate.
type HotelDeal struct {
	Name           string   `json:"name"`
	City           string   `json:"city"`
	PricePerNight  float64  `json:"pricePerNight"`
	OriginalPrice  float64  `json:"originalPrice"`
	StarRating     int      `json:"starRating"`
	UserRating     float64  `json:"userRating"`
	ReviewCount    int      `json:"reviewCount"`
	Amenities      []string `json:"amenities,omitempty"`
	CheckIn        string   `json:"checkIn"`
	CheckOut       string   `json:"checkOut"`
	Savings        float64  `json:"savings"`
	SavingsPercent int      `json:"savingsPercent"`
	BookingURL     string   `json:"bookingUrl"`
	FoundAt        string   `json:"foundAt"`
}

// EventRecord is one upcoming event in a covered city.
type EventRecord struct {
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Venue    string  `json:"venue"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	PriceMin float64 `json:"priceMin"`
	PriceMax float64 `json:"priceMax"`
	Category string  `json:"category"`
	URL      string  `json:"url"`
	ImageURL string  `json:"imageUrl"`
}

// PlaceRecord is one dining or bar venue. Type tells the two apart since the
// collections share a shape.
type PlaceRecord struct {
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Rating      float64   `json:"rating"`
	PriceLevel  string    `json:"priceLevel"`
	Categories  []string  `json:"categories"`
	ReviewCount int       `json:"reviewCount"`
	URL         string    `json:"url"`
	Type        PlaceType `json:"type"`
}

// RunMetadata summarizes one aggregation run for the consuming site.
type RunMetadata struct {
	RunID        string   `json:"runId"`
	LastUpdated  string   `json:"lastUpdated"`
	TotalFlights int      `json:"totalFlights"`
	TotalHotels  int      `json:"totalHotels"`
	TotalEvents  int      `json:"totalEvents"`
	TotalDining  int      `json:"totalDining"`
	TotalBars    int      `json:"totalBars"`
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
}
