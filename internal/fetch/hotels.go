package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/internal/schedule"
)

// HotelsFetcher serves the curated hotel list. There is no live hotel
// upstream: the records are fixed and only the check-in/out dates move with
// the calendar.
type HotelsFetcher struct {
	now func() time.Time
}

// NewHotelsFetcher creates a hotels fetcher.
func NewHotelsFetcher(opts ...Option) *HotelsFetcher {
	o := buildOptions(opts)
	return &HotelsFetcher{now: o.now}
}

// Fetch returns the curated hotel deals dated for the upcoming weekend.
func (f *HotelsFetcher) Fetch(ctx context.Context) []model.HotelDeal {
	now := f.now()
	weekend := schedule.NextWeekend(now)
	checkIn := weekend.Depart()
	checkOut := weekend.Return()
	foundAt := now.Format(time.RFC3339)

	hotels := []model.HotelDeal{
		{
			Name: "The Venetian Resort", City: "Las Vegas",
			PricePerNight: 159, OriginalPrice: 289,
			StarRating: 5, UserRating: 4.7, ReviewCount: 12500,
			Amenities: []string{"Pool", "Spa", "Casino", "Fine Dining"},
			CheckIn:   checkIn, CheckOut: checkOut,
			Savings: 130, SavingsPercent: 45,
			BookingURL: "https://www.booking.com/hotel/us/the-venetian-resort.html",
			FoundAt:    foundAt,
		},
		{
			Name: "Hilton San Francisco Union Square", City: "San Francisco",
			PricePerNight: 189, OriginalPrice: 312,
			StarRating: 4, UserRating: 4.3, ReviewCount: 8900,
			Amenities: []string{"Gym", "Restaurant", "Business Center"},
			CheckIn:   checkIn, CheckOut: checkOut,
			Savings: 123, SavingsPercent: 39,
			BookingURL: "https://www.booking.com/hotel/us/hilton-san-francisco.html",
			FoundAt:    foundAt,
		},
		{
			Name: "Hyatt Regency Phoenix", City: "Phoenix",
			PricePerNight: 129, OriginalPrice: 198,
			StarRating: 4, UserRating: 4.2, ReviewCount: 5600,
			Amenities: []string{"Pool", "Gym", "Restaurant"},
			CheckIn:   checkIn, CheckOut: checkOut,
			Savings: 69, SavingsPercent: 35,
			BookingURL: "https://www.booking.com/hotel/us/hyatt-regency-phoenix.html",
			FoundAt:    foundAt,
		},
	}

	zap.L().Info("hotel deals fetched", zap.Int("count", len(hotels)))
	return hotels
}
