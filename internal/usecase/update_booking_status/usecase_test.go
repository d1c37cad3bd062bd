package update_booking_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkBookingService/internal/domain"
	bookingRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/booking"
	"github.com/m04kA/ParkBookingService/internal/service/availability"
	"github.com/m04kA/ParkBookingService/pkg/ptr"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockCalculator struct {
	mock.Mock
}

func (m *mockCalculator) RemainingSeatsExcluding(ctx context.Context, scheduleID int64, date time.Time, bookingID int64) (*availability.Result, error) {
	args := m.Called(ctx, scheduleID, date, bookingID)
	if r := args.Get(0); r != nil {
		return r.(*availability.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCalculator) Location() *time.Location {
	return time.UTC
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordCapacityRejection(operation string) {
	m.Called(operation)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var date = time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

func draftBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:     5,
		UserID: 7,
		Status: status,
		Activities: []domain.BookingActivity{
			{ActivityID: 10, ActivityScheduleID: ptr.Ptr(int64(1)), StartTime: date.Add(10 * time.Hour), EndTime: date.Add(12 * time.Hour), NumberOfSeats: ptr.Ptr(2)},
			{ActivityID: 10, ActivityScheduleID: ptr.Ptr(int64(1)), StartTime: date.Add(10 * time.Hour), EndTime: date.Add(12 * time.Hour), NumberOfAdults: 1, NumberOfChildren: 1},
			{ActivityID: 10, ActivityScheduleID: nil, StartTime: date.Add(14 * time.Hour), EndTime: date.Add(15 * time.Hour), NumberOfAdults: 9},
		},
	}
}

func availabilityResult(a domain.Availability) *availability.Result {
	return windowResult(1, 10, 12, a)
}

// windowResult расписание активности 10 с окном from-to часов на дату
func windowResult(scheduleID int64, from, to int, a domain.Availability) *availability.Result {
	return &availability.Result{
		Schedule: &domain.ActivitySchedule{ID: scheduleID, ActivityID: 10},
		Date:     date,
		Window: domain.Interval{
			Start: date.Add(time.Duration(from) * time.Hour),
			End:   date.Add(time.Duration(to) * time.Hour),
		},
		Availability: a,
	}
}

func TestExecute_ConfirmRechecksCapacity(t *testing.T) {
	repo := &mockBookingRepository{}
	calc := &mockCalculator{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(draftBooking(domain.StatusDraft), nil)
	calc.On("RemainingSeatsExcluding", mock.Anything, int64(1), date, int64(5)).
		Return(availabilityResult(domain.NewAvailability(domain.Limited(10), domain.CapacitySourceBase, nil, 6)), nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusConfirmed).Return(nil)

	uc := NewUseCase(repo, calc, passthroughTx{}, nil, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 7, Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "draft", resp.PreviousStatus)
	assert.Equal(t, "confirmed", resp.Status)
	calc.AssertNumberOfCalls(t, "RemainingSeatsExcluding", 1)
	repo.AssertExpectations(t)
}

func TestExecute_ConfirmRejectedWhenFull(t *testing.T) {
	repo := &mockBookingRepository{}
	calc := &mockCalculator{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(draftBooking(domain.StatusInProgress), nil)
	calc.On("RemainingSeatsExcluding", mock.Anything, int64(1), date, int64(5)).
		Return(availabilityResult(domain.NewAvailability(domain.Limited(10), domain.CapacitySourceBase, nil, 7)), nil)

	uc := NewUseCase(repo, calc, passthroughTx{}, nil, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 1, IsAdmin: true, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrNotEnoughSeats)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ConfirmCountsOverlappingItemsOfActivity(t *testing.T) {
	repo := &mockBookingRepository{}
	calc := &mockCalculator{}
	rec := &mockMetrics{}

	// 10:00-12:00 и 11:00-13:00 одной активности, по 5 мест, других броней нет
	booking := &domain.Booking{
		ID:     5,
		UserID: 7,
		Status: domain.StatusDraft,
		Activities: []domain.BookingActivity{
			{ActivityID: 10, ActivityScheduleID: ptr.Ptr(int64(1)), StartTime: date.Add(10 * time.Hour), EndTime: date.Add(12 * time.Hour), NumberOfSeats: ptr.Ptr(5)},
			{ActivityID: 10, ActivityScheduleID: ptr.Ptr(int64(2)), StartTime: date.Add(11 * time.Hour), EndTime: date.Add(13 * time.Hour), NumberOfSeats: ptr.Ptr(5)},
		},
	}

	repo.On("GetByID", mock.Anything, int64(5)).Return(booking, nil)
	calc.On("RemainingSeatsExcluding", mock.Anything, int64(1), date, int64(5)).
		Return(windowResult(1, 10, 12, domain.NewAvailability(domain.Limited(5), domain.CapacitySourceBase, nil, 0)), nil)
	calc.On("RemainingSeatsExcluding", mock.Anything, int64(2), date, int64(5)).
		Return(windowResult(2, 11, 13, domain.NewAvailability(domain.Limited(5), domain.CapacitySourceBase, nil, 0)), nil).Maybe()
	rec.On("RecordCapacityRejection", "update_booking_status").Once()

	uc := NewUseCase(repo, calc, passthroughTx{}, rec, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 7, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrNotEnoughSeats)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	rec.AssertExpectations(t)
}

func TestExecute_PaymentReceivedSkipsCapacityCheck(t *testing.T) {
	repo := &mockBookingRepository{}
	calc := &mockCalculator{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(draftBooking(domain.StatusConfirmed), nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusPaymentReceived).Return(nil)

	uc := NewUseCase(repo, calc, passthroughTx{}, nil, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 1, IsAdmin: true, Status: "payment_received"})

	require.NoError(t, err)
	calc.AssertNotCalled(t, "RemainingSeatsExcluding", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		current domain.BookingStatus
		req     *Request
		wantErr error
	}{
		{name: "unknown status", current: domain.StatusDraft, req: &Request{BookingID: 5, UserID: 7, Status: "archived"}, wantErr: ErrInvalidInput},
		{name: "other user", current: domain.StatusDraft, req: &Request{BookingID: 5, UserID: 8, Status: "cancelled"}, wantErr: ErrAccessDenied},
		{name: "owner cannot mark paid", current: domain.StatusConfirmed, req: &Request{BookingID: 5, UserID: 7, Status: "payment_received"}, wantErr: ErrAccessDenied},
		{name: "cancelled is final", current: domain.StatusCancelled, req: &Request{BookingID: 5, UserID: 1, IsAdmin: true, Status: "confirmed"}, wantErr: ErrInvalidTransition},
		{name: "draft cannot be paid", current: domain.StatusDraft, req: &Request{BookingID: 5, UserID: 1, IsAdmin: true, Status: "payment_received"}, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{}
			repo.On("GetByID", mock.Anything, int64(5)).Return(draftBooking(tt.current), nil).Maybe()

			uc := NewUseCase(repo, &mockCalculator{}, passthroughTx{}, nil, nopLogger{})
			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &mockBookingRepository{}
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := NewUseCase(repo, &mockCalculator{}, passthroughTx{}, nil, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, UserID: 7, Status: "cancelled"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGroupDemand(t *testing.T) {
	groups := groupDemand(draftBooking(domain.StatusDraft).Activities, time.UTC)

	require.Len(t, groups, 1)
	assert.Equal(t, int64(1), groups[0].scheduleID)
	assert.Equal(t, date, groups[0].date)
}
