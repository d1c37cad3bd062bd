package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkBookingService/pkg/ptr"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

func TestActivitySchedule_WindowOn(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, loc)

	schedule := ActivitySchedule{
		StartTime: types.MustTimeString("10:00"),
		EndTime:   ptr.Ptr(types.MustTimeString("14:00")),
	}

	t.Run("configured end", func(t *testing.T) {
		w := schedule.WindowOn(date, false)
		assert.Equal(t, time.Date(2026, 7, 14, 10, 0, 0, 0, loc), w.Start)
		assert.Equal(t, time.Date(2026, 7, 14, 14, 0, 0, 0, loc), w.End)
	})

	t.Run("day-spanning activity ends at 23:59:59", func(t *testing.T) {
		w := schedule.WindowOn(date, true)
		assert.Equal(t, time.Date(2026, 7, 14, 23, 59, 59, 0, loc), w.End)

		evening := Interval{
			Start: time.Date(2026, 7, 14, 20, 0, 0, 0, loc),
			End:   time.Date(2026, 7, 14, 22, 0, 0, 0, loc),
		}
		assert.True(t, w.Overlaps(evening))
		assert.False(t, schedule.WindowOn(date, false).Overlaps(evening))
	})

	t.Run("open-ended schedule ends at end of date", func(t *testing.T) {
		open := ActivitySchedule{StartTime: types.MustTimeString("06:30")}
		w := open.WindowOn(date.Add(15*time.Hour), false)
		assert.Equal(t, time.Date(2026, 7, 14, 6, 30, 0, 0, loc), w.Start)
		assert.Equal(t, time.Date(2026, 7, 14, 23, 59, 59, 0, loc), w.End)
	})
}

func TestInterval_Overlaps(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2026, 7, 14, h, m, 0, 0, time.UTC) }
	window := Interval{Start: day(10, 0), End: day(12, 0)}

	tests := []struct {
		name    string
		booking Interval
		want    bool
	}{
		{name: "partial overlap from before", booking: Interval{Start: day(9, 0), End: day(11, 0)}, want: true},
		{name: "ends before window", booking: Interval{Start: day(6, 0), End: day(8, 59)}, want: false},
		{name: "touches window start", booking: Interval{Start: day(8, 0), End: day(10, 0)}, want: true},
		{name: "touches window end", booking: Interval{Start: day(12, 0), End: day(13, 0)}, want: true},
		{name: "inside window", booking: Interval{Start: day(10, 30), End: day(11, 0)}, want: true},
		{name: "covers window", booking: Interval{Start: day(7, 0), End: day(18, 0)}, want: true},
		{name: "after window", booking: Interval{Start: day(12, 1), End: day(14, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Overlaps(tt.booking))
			assert.Equal(t, tt.want, tt.booking.Overlaps(window))
		})
	}
}

func TestDaySpanningPolicy(t *testing.T) {
	policy := NewDaySpanningPolicy([]string{"Camping", " overnight ", ""})

	assert.True(t, policy.IsDaySpanning("camping"))
	assert.True(t, policy.IsDaySpanning("OVERNIGHT"))
	assert.False(t, policy.IsDaySpanning("game-drive"))
	assert.False(t, policy.IsDaySpanning(""))

	assert.False(t, DaySpanningPolicy{}.IsDaySpanning("camping"))
}
