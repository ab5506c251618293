package fetch

import (
	"time"

	"github.com/socal-deals/deals-cli/internal/model"
	"github.com/socal-deals/deals-cli/internal/schedule"
)

// SampleFlights is the fixed fallback flight set, dated for the weekend after
// now. Published whenever the flight upstream is unusable so the site always
// has content.
func SampleFlights(now time.Time) []model.FlightDeal {
	weekend := schedule.NextWeekend(now)
	depart := weekend.Depart()
	ret := weekend.Return()
	foundAt := now.Format(time.RFC3339)

	return []model.FlightDeal{
		{
			Origin: "LAX", Destination: "LAS", Price: 89, OriginalPrice: 156,
			Airline: "Spirit", DepartureDate: depart, ReturnDate: ret,
			Savings: 67, SavingsPercent: 43, IsHot: true, FoundAt: foundAt,
			BookingURL: "https://www.kayak.com/flights/LAX-LAS",
		},
		{
			Origin: "ONT", Destination: "SFO", Price: 124, OriginalPrice: 198,
			Airline: "United", DepartureDate: depart, ReturnDate: ret,
			Savings: 74, SavingsPercent: 37, IsHot: true, FoundAt: foundAt,
			BookingURL: "https://www.kayak.com/flights/ONT-SFO",
		},
		{
			Origin: "SNA", Destination: "PHX", Price: 67, OriginalPrice: 134,
			Airline: "American", DepartureDate: depart, ReturnDate: ret,
			Savings: 67, SavingsPercent: 50, IsHot: true, FoundAt: foundAt,
			BookingURL: "https://www.kayak.com/flights/SNA-PHX",
		},
		{
			Origin: "LAX", Destination: "SEA", Price: 148, OriginalPrice: 267,
			Airline: "Alaska", DepartureDate: depart, ReturnDate: ret,
			Savings: 119, SavingsPercent: 45, IsHot: true, FoundAt: foundAt,
			BookingURL: "https://www.kayak.com/flights/LAX-SEA",
		},
		{
			Origin: "ONT", Destination: "DEN", Price: 156, OriginalPrice: 245,
			Airline: "Frontier", DepartureDate: depart, ReturnDate: ret,
			Savings: 89, SavingsPercent: 36, IsHot: true, FoundAt: foundAt,
			BookingURL: "https://www.kayak.com/flights/ONT-DEN",
		},
	}
}

// SampleEvents is the fixed fallback event set, dated relative to now.
func SampleEvents(now time.Time) []model.EventRecord {
	return []model.EventRecord{
		{
			Name: "Cirque du Soleil - O", City: "Las Vegas", Venue: "Bellagio Hotel",
			Date: now.AddDate(0, 0, 7).Format(schedule.DateFormat), Time: "19:30",
			PriceMin: 99, PriceMax: 250, Category: "Arts & Theatre",
			URL: "https://www.ticketmaster.com", ImageURL: "",
		},
		{
			Name: "Golden State Warriors vs Lakers", City: "San Francisco", Venue: "Chase Center",
			Date: now.AddDate(0, 0, 10).Format(schedule.DateFormat), Time: "19:00",
			PriceMin: 150, PriceMax: 800, Category: "Sports",
			URL: "https://www.ticketmaster.com", ImageURL: "",
		},
		{
			Name: "Comedy Night Live", City: "Phoenix", Venue: "Stand Up Live",
			Date: now.AddDate(0, 0, 5).Format(schedule.DateFormat), Time: "20:00",
			PriceMin: 25, PriceMax: 45, Category: "Comedy",
			URL: "https://www.ticketmaster.com", ImageURL: "",
		},
	}
}
