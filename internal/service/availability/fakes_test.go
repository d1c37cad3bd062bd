package availability

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ParkBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/schedule"
)

// memoryStore in-memory хранилище расписаний, корректировок и бронирований
type memoryStore struct {
	schedules   map[int64]*domain.ActivitySchedule
	adjustments []domain.SeatsAdjustment
	bookings    []domain.Booking
}

func newMemoryStore() *memoryStore {
	return &memoryStore{schedules: make(map[int64]*domain.ActivitySchedule)}
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.ActivitySchedule, error) {
	schedule, ok := s.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	copied := *schedule
	return &copied, nil
}

func (s *memoryStore) ListActive(_ context.Context, scheduleID int64, date time.Time) ([]domain.SeatsAdjustment, error) {
	result := make([]domain.SeatsAdjustment, 0)
	for _, adj := range s.adjustments {
		if adj.ActivityScheduleID == scheduleID && adj.Covers(date) {
			result = append(result, adj)
		}
	}
	return result, nil
}

func (s *memoryStore) ListCommittedDemand(_ context.Context, filter domain.DemandFilter) ([]domain.BookingActivity, error) {
	result := make([]domain.BookingActivity, 0)
	for _, booking := range s.bookings {
		if filter.ExcludeBookingID != nil && booking.ID == *filter.ExcludeBookingID {
			continue
		}
		if !statusIn(booking.Status, filter.Statuses) {
			continue
		}
		for _, item := range booking.Activities {
			if item.ActivityID == filter.ActivityID && item.Interval().Overlaps(filter.Window) {
				result = append(result, item)
			}
		}
	}
	return result, nil
}

func statusIn(status domain.BookingStatus, statuses []domain.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockScheduleRepository struct {
	mock.Mock
}

func (m *mockScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.ActivitySchedule, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.ActivitySchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAdjustmentRepository struct {
	mock.Mock
}

func (m *mockAdjustmentRepository) ListActive(ctx context.Context, scheduleID int64, date time.Time) ([]domain.SeatsAdjustment, error) {
	args := m.Called(ctx, scheduleID, date)
	if a := args.Get(0); a != nil {
		return a.([]domain.SeatsAdjustment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) ListCommittedDemand(ctx context.Context, filter domain.DemandFilter) ([]domain.BookingActivity, error) {
	args := m.Called(ctx, filter)
	if a := args.Get(0); a != nil {
		return a.([]domain.BookingActivity), args.Error(1)
	}
	return nil, args.Error(1)
}
