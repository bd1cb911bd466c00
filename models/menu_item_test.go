package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuItem(t *testing.T) {
	item, err := NewMenuItem("M001", "Pasta", "Classic Italian", 12.99, "CH001", false)
	require.NoError(t, err)
	assert.Equal(t, "M001", item.ItemID)
	assert.Equal(t, "CH001", item.ChefID)
	assert.Equal(t, 0.0, item.Rating, "New item should start unrated")
	assert.Equal(t, 0, item.TotalRatings)
	assert.False(t, item.IsEarlyAccess)
}

func TestNewMenuItemInvalidPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
	}{
		{"zero price", 0},
		{"negative price", -3.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewMenuItem("M001", "Pasta", "Classic", tt.price, "CH001", false)
			assert.Nil(t, item)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateRatingRegularWeight(t *testing.T) {
	item, err := NewMenuItem("M001", "Pasta", "Classic", 12.99, "CH001", false)
	require.NoError(t, err)

	require.NoError(t, item.UpdateRating(4.0, false))
	assert.Equal(t, 4.0, item.Rating, "First rating should become the mean")
	assert.Equal(t, 1, item.TotalRatings)

	require.NoError(t, item.UpdateRating(2.0, false))
	assert.InDelta(t, 3.0, item.Rating, 0.0001, "Two equal-weight ratings should average")
	assert.Equal(t, 2, item.TotalRatings)
}

func TestUpdateRatingVIPWeight(t *testing.T) {
	item, err := NewMenuItem("M001", "Pasta", "Classic", 12.99, "CH001", false)
	require.NoError(t, err)

	require.NoError(t, item.UpdateRating(4.0, false))
	require.NoError(t, item.UpdateRating(2.0, true))

	// (4.0*1 + 2.0*1.5) / (1 + 1.5) = 7.0 / 2.5
	assert.InDelta(t, 2.8, item.Rating, 0.0001, "VIP rating should carry weight 1.5")
	assert.Equal(t, 2, item.TotalRatings, "TotalRatings counts events, not weight")
}

func TestUpdateRatingConvexCombination(t *testing.T) {
	item, err := NewMenuItem("M001", "Pasta", "Classic", 12.99, "CH001", false)
	require.NoError(t, err)
	require.NoError(t, item.UpdateRating(3.0, false))

	for _, rating := range []float64{0, 1.5, 2.5, 4.5, 5} {
		prior := item.Rating
		require.NoError(t, item.UpdateRating(rating, true))
		low, high := prior, rating
		if low > high {
			low, high = high, low
		}
		assert.GreaterOrEqual(t, item.Rating, low, "Mean must stay between prior and new rating")
		assert.LessOrEqual(t, item.Rating, high, "Mean must stay between prior and new rating")
	}
}

func TestUpdateRatingOutOfRange(t *testing.T) {
	item, err := NewMenuItem("M001", "Pasta", "Classic", 12.99, "CH001", false)
	require.NoError(t, err)

	for _, rating := range []float64{-0.1, 5.1, 100} {
		err := item.UpdateRating(rating, false)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Equal(t, 0, item.TotalRatings, "Rejected ratings must not count")
	assert.Equal(t, 0.0, item.Rating, "Rejected ratings must not move the mean")
}

func TestUpdateRatingThresholdCounters(t *testing.T) {
	item, err := NewMenuItem("M001", "Pasta", "Classic", 12.99, "CH001", false)
	require.NoError(t, err)

	require.NoError(t, item.UpdateRating(1.9, false)) // low
	require.NoError(t, item.UpdateRating(2.0, false)) // neither
	require.NoError(t, item.UpdateRating(4.0, false)) // neither
	require.NoError(t, item.UpdateRating(4.1, true))  // high
	require.NoError(t, item.UpdateRating(0.0, false)) // low

	assert.Equal(t, 2, item.LowRatingCount)
	assert.Equal(t, 1, item.HighRatingCount)
	assert.Equal(t, 5, item.TotalRatings)
}
