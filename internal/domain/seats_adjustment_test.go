package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeatsAdjustment_Covers(t *testing.T) {
	adj := SeatsAdjustment{StartDate: date(2026, 7, 10), EndDate: date(2026, 7, 12)}

	assert.False(t, adj.Covers(date(2026, 7, 9)))
	assert.True(t, adj.Covers(date(2026, 7, 10)))
	assert.True(t, adj.Covers(date(2026, 7, 11).Add(23*time.Hour)))
	assert.True(t, adj.Covers(date(2026, 7, 12)))
	assert.False(t, adj.Covers(date(2026, 7, 13)))
}

func TestPickActive(t *testing.T) {
	day1 := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	adjustments := []SeatsAdjustment{
		{ID: 1, AdjustedSeats: 4, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 31), UpdatedAt: day2},
		{ID: 2, AdjustedSeats: 8, StartDate: date(2026, 7, 10), EndDate: date(2026, 7, 20), UpdatedAt: day1},
		{ID: 3, AdjustedSeats: 2, StartDate: date(2026, 8, 1), EndDate: date(2026, 8, 2), UpdatedAt: day2.Add(time.Hour)},
	}

	t.Run("latest updated wins", func(t *testing.T) {
		active := PickActive(adjustments, date(2026, 7, 15))
		require.NotNil(t, active)
		assert.Equal(t, int64(1), active.ID)
	})

	t.Run("only covering adjustments are considered", func(t *testing.T) {
		active := PickActive(adjustments, date(2026, 8, 1))
		require.NotNil(t, active)
		assert.Equal(t, int64(3), active.ID)
	})

	t.Run("none active", func(t *testing.T) {
		assert.Nil(t, PickActive(adjustments, date(2026, 9, 1)))
		assert.Nil(t, PickActive(nil, date(2026, 7, 15)))
	})

	t.Run("equal updatedAt falls back to highest id", func(t *testing.T) {
		tied := []SeatsAdjustment{
			{ID: 7, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 31), UpdatedAt: day1},
			{ID: 5, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 31), UpdatedAt: day1},
		}
		active := PickActive(tied, date(2026, 7, 15))
		require.NotNil(t, active)
		assert.Equal(t, int64(7), active.ID)
	})
}
