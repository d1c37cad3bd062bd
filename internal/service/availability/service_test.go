package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/ptr"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

const (
	scheduleID = int64(1)
	activityID = int64(10)
)

var targetDate = time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, 7, 14, h, m, 0, 0, time.UTC)
}

func newStore(seats *int) *memoryStore {
	store := newMemoryStore()
	store.schedules[scheduleID] = &domain.ActivitySchedule{
		ID:            scheduleID,
		ActivityID:    activityID,
		ActivitySlug:  "game-drive",
		StartTime:     types.MustTimeString("10:00"),
		EndTime:       ptr.Ptr(types.MustTimeString("12:00")),
		NumberOfSeats: seats,
	}
	return store
}

func addBooking(store *memoryStore, status domain.BookingStatus, items ...domain.BookingActivity) {
	id := int64(len(store.bookings) + 1)
	for i := range items {
		items[i].BookingID = id
		if items[i].ActivityID == 0 {
			items[i].ActivityID = activityID
		}
	}
	store.bookings = append(store.bookings, domain.Booking{ID: id, Status: status, Activities: items})
}

func seats(n int, start, end time.Time) domain.BookingActivity {
	return domain.BookingActivity{NumberOfSeats: ptr.Ptr(n), StartTime: start, EndTime: end}
}

func newCalculator(store *memoryStore, daySpanning ...string) *Calculator {
	return NewCalculator(store, store, store, domain.NewDaySpanningPolicy(daySpanning), time.UTC, nopLogger{})
}

func remaining(t *testing.T, calc *Calculator) domain.Availability {
	t.Helper()
	result, err := calc.RemainingSeats(context.Background(), scheduleID, targetDate)
	require.NoError(t, err)
	return result.Availability
}

func TestRemainingSeats_BaseCapacityWithoutDemand(t *testing.T) {
	got := remaining(t, newCalculator(newStore(ptr.Ptr(12))))

	assert.Equal(t, 12, got.Remaining)
	assert.Equal(t, domain.CapacitySourceBase, got.CapacitySource)
	assert.Nil(t, got.AdjustmentID)
}

func TestRemainingSeats_AdjustmentOverridesBase(t *testing.T) {
	for _, base := range []*int{nil, ptr.Ptr(0), ptr.Ptr(50)} {
		store := newStore(base)
		store.adjustments = []domain.SeatsAdjustment{
			{ID: 4, ActivityScheduleID: scheduleID, AdjustedSeats: 8, StartDate: targetDate, EndDate: targetDate},
		}

		got := remaining(t, newCalculator(store))

		assert.Equal(t, 8, got.Remaining)
		assert.Equal(t, domain.CapacitySourceAdjustment, got.CapacitySource)
		require.NotNil(t, got.AdjustmentID)
		assert.Equal(t, int64(4), *got.AdjustmentID)
	}
}

func TestRemainingSeats_AdjustmentOutsideRangeIgnored(t *testing.T) {
	store := newStore(ptr.Ptr(12))
	store.adjustments = []domain.SeatsAdjustment{
		{ID: 4, ActivityScheduleID: scheduleID, AdjustedSeats: 2, StartDate: targetDate.AddDate(0, 0, 1), EndDate: targetDate.AddDate(0, 0, 5)},
	}

	assert.Equal(t, 12, remaining(t, newCalculator(store)).Remaining)
}

func TestRemainingSeats_LatestUpdatedAdjustmentWins(t *testing.T) {
	day1 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	store := newStore(ptr.Ptr(12))
	store.adjustments = []domain.SeatsAdjustment{
		{ID: 2, ActivityScheduleID: scheduleID, AdjustedSeats: 20, StartDate: targetDate.AddDate(0, 0, -3), EndDate: targetDate, UpdatedAt: day2},
		{ID: 1, ActivityScheduleID: scheduleID, AdjustedSeats: 5, StartDate: targetDate, EndDate: targetDate.AddDate(0, 0, 3), UpdatedAt: day1},
	}

	got := remaining(t, newCalculator(store))
	assert.Equal(t, 20, got.Remaining)
	assert.Equal(t, int64(2), *got.AdjustmentID)
}

func TestRemainingSeats_ExplicitSeatsTakePrecedence(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	addBooking(store, domain.StatusConfirmed, domain.BookingActivity{
		NumberOfSeats:    ptr.Ptr(3),
		NumberOfAdults:   1,
		NumberOfChildren: 1,
		StartTime:        at(10, 0),
		EndTime:          at(12, 0),
	})
	addBooking(store, domain.StatusConfirmed, domain.BookingActivity{
		NumberOfAdults:   2,
		NumberOfChildren: 2,
		StartTime:        at(10, 0),
		EndTime:          at(12, 0),
	})

	got := remaining(t, newCalculator(store))
	assert.Equal(t, 7, got.BookedSeats)
	assert.Equal(t, 3, got.Remaining)
}

func TestRemainingSeats_OverlapInclusion(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	addBooking(store, domain.StatusConfirmed, seats(2, at(9, 0), at(11, 0)))
	addBooking(store, domain.StatusConfirmed, seats(5, at(6, 0), at(8, 59)))
	addBooking(store, domain.StatusConfirmed, seats(1, at(12, 0), at(13, 0)))

	got := remaining(t, newCalculator(store))
	assert.Equal(t, 3, got.BookedSeats, "partial and touching overlaps count, earlier bookings do not")
	assert.Equal(t, 7, got.Remaining)
}

func TestRemainingSeats_OnlySeatConsumingStatusesCount(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	addBooking(store, domain.StatusDeclined, seats(4, at(10, 0), at(12, 0)))
	addBooking(store, domain.StatusInProgress, seats(4, at(10, 0), at(12, 0)))
	addBooking(store, domain.StatusDraft, seats(4, at(10, 0), at(12, 0)))
	addBooking(store, domain.StatusCancelled, seats(4, at(10, 0), at(12, 0)))
	addBooking(store, domain.StatusPaymentReceived, seats(1, at(10, 0), at(12, 0)))

	got := remaining(t, newCalculator(store))
	assert.Equal(t, 1, got.BookedSeats)
	assert.Equal(t, 9, got.Remaining)
}

func TestRemainingSeats_OtherActivitiesIgnored(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	addBooking(store, domain.StatusConfirmed, domain.BookingActivity{
		ActivityID:    activityID + 1,
		NumberOfSeats: ptr.Ptr(6),
		StartTime:     at(10, 0),
		EndTime:       at(12, 0),
	})

	assert.Equal(t, 10, remaining(t, newCalculator(store)).Remaining)
}

func TestRemainingSeats_DaySpanningActivity(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	store.schedules[scheduleID].ActivitySlug = "camping"
	store.schedules[scheduleID].EndTime = ptr.Ptr(types.MustTimeString("14:00"))
	addBooking(store, domain.StatusConfirmed, seats(4, at(20, 0), at(23, 0)))

	t.Run("window forced to end of day", func(t *testing.T) {
		result, err := newCalculator(store, "camping").RemainingSeats(context.Background(), scheduleID, targetDate)
		require.NoError(t, err)

		assert.True(t, result.DaySpanning)
		assert.Equal(t, at(23, 59).Add(59*time.Second), result.Window.End)
		assert.Equal(t, 6, result.Availability.Remaining)
	})

	t.Run("regular activity keeps configured end", func(t *testing.T) {
		assert.Equal(t, 10, remaining(t, newCalculator(store)).Remaining)
	})
}

func TestRemainingSeats_OpenEndedSchedule(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	store.schedules[scheduleID].EndTime = nil
	addBooking(store, domain.StatusConfirmed, seats(2, at(21, 0), at(22, 0)))
	addBooking(store, domain.StatusConfirmed, seats(3, time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC), time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)))

	got := remaining(t, newCalculator(store))
	assert.Equal(t, 2, got.BookedSeats, "bookings on the next date do not count")
}

func TestRemainingSeats_ZeroAndNegativeRemaining(t *testing.T) {
	t.Run("zero capacity without demand", func(t *testing.T) {
		got := remaining(t, newCalculator(newStore(ptr.Ptr(0))))
		assert.Equal(t, 0, got.Remaining)
		assert.False(t, got.IsOverbooked())
		assert.False(t, got.CanAccommodate(1))
	})

	t.Run("demand above capacity is signalled", func(t *testing.T) {
		store := newStore(ptr.Ptr(2))
		addBooking(store, domain.StatusConfirmed, seats(5, at(10, 0), at(12, 0)))

		got := remaining(t, newCalculator(store))
		assert.Equal(t, -3, got.Remaining)
		available, _ := got.AvailableSeats()
		assert.Equal(t, 0, available)
		assert.True(t, got.IsOverbooked())
		assert.False(t, got.CanAccommodate(1))
	})
}

func TestRemainingSeats_Unlimited(t *testing.T) {
	store := newStore(nil)
	addBooking(store, domain.StatusConfirmed, seats(500, at(10, 0), at(12, 0)))

	got := remaining(t, newCalculator(store))
	assert.True(t, got.IsUnlimited())
	assert.Equal(t, 500, got.BookedSeats)
	assert.True(t, got.CanAccommodate(1000))
}

func TestRemainingSeats_EndToEnd(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	addBooking(store, domain.StatusConfirmed, seats(4, at(10, 0), at(12, 0)))
	addBooking(store, domain.StatusConfirmed, seats(3, at(11, 0), at(13, 0)))
	calc := newCalculator(store)

	got := remaining(t, calc)
	assert.Equal(t, 3, got.Remaining)

	store.adjustments = append(store.adjustments, domain.SeatsAdjustment{
		ID: 1, ActivityScheduleID: scheduleID, AdjustedSeats: 6, StartDate: targetDate, EndDate: targetDate,
	})

	got = remaining(t, calc)
	assert.Equal(t, -1, got.Remaining)
	available, limited := got.AvailableSeats()
	assert.True(t, limited)
	assert.Equal(t, 0, available)
	assert.True(t, got.IsOverbooked())
}

func TestRemainingSeatsExcluding(t *testing.T) {
	store := newStore(ptr.Ptr(10))
	addBooking(store, domain.StatusConfirmed, seats(4, at(10, 0), at(12, 0)))
	addBooking(store, domain.StatusConfirmed, seats(3, at(10, 0), at(12, 0)))

	result, err := newCalculator(store).RemainingSeatsExcluding(context.Background(), scheduleID, targetDate, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Availability.Remaining)
}

func TestRemainingSeats_ParkTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	store := newStore(ptr.Ptr(10))
	// 10:30 в Найроби = 07:30 UTC
	addBooking(store, domain.StatusConfirmed, seats(4, time.Date(2026, 7, 14, 7, 30, 0, 0, time.UTC), time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC)))

	calc := NewCalculator(store, store, store, domain.DaySpanningPolicy{}, loc, nopLogger{})
	result, err := calc.RemainingSeats(context.Background(), scheduleID, targetDate)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 7, 14, 10, 0, 0, 0, loc), result.Window.Start)
	assert.Equal(t, 6, result.Availability.Remaining)
}

func TestRemainingSeats_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		calc := newCalculator(newStore(nil))

		_, err := calc.RemainingSeats(ctx, 0, targetDate)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = calc.RemainingSeats(ctx, scheduleID, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("schedule not found", func(t *testing.T) {
		_, err := newCalculator(newStore(nil)).RemainingSeats(ctx, 99, targetDate)
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})

	t.Run("store errors propagate as internal", func(t *testing.T) {
		schedules := &mockScheduleRepository{}
		adjustments := &mockAdjustmentRepository{}
		bookings := &mockBookingRepository{}

		store := newStore(ptr.Ptr(10))
		schedules.On("GetByID", mock.Anything, scheduleID).Return(store.schedules[scheduleID], nil)
		bookings.On("ListCommittedDemand", mock.Anything, mock.MatchedBy(func(f domain.DemandFilter) bool {
			return f.ActivityID == activityID && len(f.Statuses) == 2
		})).Return([]domain.BookingActivity{}, nil)
		adjustments.On("ListActive", mock.Anything, scheduleID, targetDate).Return(nil, errors.New("connection reset"))

		calc := NewCalculator(schedules, adjustments, bookings, domain.DaySpanningPolicy{}, time.UTC, nopLogger{})
		_, err := calc.RemainingSeats(ctx, scheduleID, targetDate)

		assert.ErrorIs(t, err, ErrInternal)
		schedules.AssertExpectations(t)
		bookings.AssertExpectations(t)
		adjustments.AssertExpectations(t)
	})
}
