package domain

import (
	"time"

	"github.com/m04kA/ParkBookingService/pkg/types"
)

// ActivitySchedule represents a recurring daily time window of an activity
type ActivitySchedule struct {
	ID           int64
	ActivityID   int64
	ActivitySlug string // Денормализовано из activities для правила "весь день"
	StartTime    types.TimeString
	EndTime      *types.TimeString // nil = окно без конца (до конца дня)

	NumberOfSeats    *int // nil = без ограничения
	MinNumberOfSeats *int // Рекомендательные границы, калькулятором не проверяются
	MaxNumberOfSeats *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BaseCapacity returns the configured capacity of the schedule
func (s *ActivitySchedule) BaseCapacity() Capacity {
	return CapacityFromNullable(s.NumberOfSeats)
}

// IsOpenEnded returns true if the schedule has no configured end time.
// Its window is capped at 23:59:59 of the date on purpose: any booking starting that day still overlaps it.
func (s *ActivitySchedule) IsOpenEnded() bool {
	return s.EndTime == nil || s.EndTime.IsZero()
}

// WindowOn builds the comparison interval of the schedule on a calendar date.
// Day-spanning activities and open-ended schedules end at 23:59:59 of that date.
// The date location is used as the park timezone.
func (s *ActivitySchedule) WindowOn(date time.Time, daySpanning bool) Interval {
	date = types.DateOnly(date)

	end := types.EndOfDay()
	if !daySpanning && !s.IsOpenEnded() {
		end = *s.EndTime
	}

	return Interval{
		Start: s.StartTime.OnDate(date),
		End:   end.OnDate(date),
	}
}
