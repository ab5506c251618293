package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotelsFetch(t *testing.T) {
	f := NewHotelsFetcher(WithClock(fixedClock))

	hotels := f.Fetch(context.Background())
	require.Len(t, hotels, 3)

	names := []string{"The Venetian Resort", "Hilton San Francisco Union Square", "Hyatt Regency Phoenix"}
	for i, h := range hotels {
		assert.Equal(t, names[i], h.Name)
		assert.Equal(t, "2025-01-03", h.CheckIn)
		assert.Equal(t, "2025-01-05", h.CheckOut)
		assert.Equal(t, fixedNow.Format(time.RFC3339), h.FoundAt)
		assert.GreaterOrEqual(t, h.StarRating, 1)
		assert.LessOrEqual(t, h.StarRating, 5)
		assert.NotEmpty(t, h.Amenities)
		assert.Greater(t, h.OriginalPrice, h.PricePerNight)
	}

	venetian := hotels[0]
	assert.Equal(t, "Las Vegas", venetian.City)
	assert.InDelta(t, 159, venetian.PricePerNight, 0.001)
	assert.Equal(t, 45, venetian.SavingsPercent)
	assert.Equal(t, 12500, venetian.ReviewCount)
}

func TestHotelsFetchDatesMoveWithClock(t *testing.T) {
	// A Friday clock pushes check-in a full week out.
	friday := time.Date(2025, time.January, 3, 9, 0, 0, 0, time.UTC)
	f := NewHotelsFetcher(WithClock(func() time.Time { return friday }))

	hotels := f.Fetch(context.Background())
	require.NotEmpty(t, hotels)
	assert.Equal(t, "2025-01-10", hotels[0].CheckIn)
	assert.Equal(t, "2025-01-12", hotels[0].CheckOut)
}
