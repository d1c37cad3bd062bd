package domain

import (
	"time"

	"github.com/m04kA/ParkBookingService/pkg/types"
)

// SeatsAdjustment represents a date-ranged manual override of a schedule capacity
type SeatsAdjustment struct {
	ID                 int64
	ActivityScheduleID int64
	AdjustedSeats      int
	StartDate          time.Time // Включительно, только дата
	EndDate            time.Time // Включительно, только дата
	Reason             string
	UserID             int64 // Кто внес корректировку
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Covers returns true if the adjustment is active on the given calendar date
func (a *SeatsAdjustment) Covers(date time.Time) bool {
	day := calendarDay(date)
	return calendarDay(a.StartDate) <= day && day <= calendarDay(a.EndDate)
}

// Capacity returns the override as a limited capacity
func (a *SeatsAdjustment) Capacity() Capacity {
	return Limited(a.AdjustedSeats)
}

// PickActive selects the adjustment active on date.
// Overlapping ranges are allowed: the most recently updated one wins,
// equal updatedAt falls back to the highest id.
func PickActive(adjustments []SeatsAdjustment, date time.Time) *SeatsAdjustment {
	var active *SeatsAdjustment
	for i := range adjustments {
		adj := &adjustments[i]
		if !adj.Covers(date) {
			continue
		}
		if active == nil || supersedes(adj, active) {
			active = adj
		}
	}
	return active
}

func supersedes(a, b *SeatsAdjustment) bool {
	if a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.ID > b.ID
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

// calendarDay сравнимое представление даты без учета часового пояса
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// AdjustmentsFilter фильтр истории корректировок
type AdjustmentsFilter struct {
	ActivityScheduleID int64
	From               *time.Time // Корректировки, заканчивающиеся не раньше From
	To                 *time.Time // Корректировки, начинающиеся не позже To
}

// FormatDate formats a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(types.DateFormat)
}
