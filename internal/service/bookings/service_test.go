package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkBookingService/internal/domain"
	bookingRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/booking"
	"github.com/m04kA/ParkBookingService/internal/service/bookings/models"
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

func (m *mockBookingRepository) ListByUser(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if b := args.Get(0); b != nil {
		return b.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:     10,
		UserID: 42,
		Status: domain.StatusConfirmed,
		Activities: []domain.BookingActivity{
			{ID: 1, BookingID: 10, ActivityID: 3, NumberOfAdults: 2, NumberOfChildren: 1},
			{ID: 2, BookingID: 10, ActivityID: 4, NumberOfSeats: ptr.Ptr(5), NumberOfAdults: 1},
		},
	}
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.GetBookingRequest
		repoErr error
		wantErr error
	}{
		{name: "владелец", req: models.GetBookingRequest{BookingID: 10, UserID: 42}},
		{name: "администратор", req: models.GetBookingRequest{BookingID: 10, UserID: 1, IsAdmin: true}},
		{name: "чужое бронирование", req: models.GetBookingRequest{BookingID: 10, UserID: 7}, wantErr: ErrAccessDenied},
		{name: "не найдено", req: models.GetBookingRequest{BookingID: 10, UserID: 42}, repoErr: bookingRepo.ErrBookingNotFound, wantErr: ErrBookingNotFound},
		{name: "ошибка репозитория", req: models.GetBookingRequest{BookingID: 10, UserID: 42}, repoErr: errors.New("timeout"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{}
			if tt.repoErr != nil {
				repo.On("GetByID", ctx, int64(10)).Return(nil, tt.repoErr)
			} else {
				repo.On("GetByID", ctx, int64(10)).Return(sampleBooking(), nil)
			}

			resp, err := NewService(repo, nopLogger{}).GetByID(ctx, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "confirmed", resp.Status)
			require.Len(t, resp.Items, 2)
			assert.Equal(t, 3, resp.Items[0].Seats)
			assert.Equal(t, 5, resp.Items[1].Seats)
			assert.Equal(t, 8, resp.Seats)
		})
	}
}

func TestService_GetUserBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("фильтр по статусу", func(t *testing.T) {
		repo := &mockBookingRepository{}
		repo.On("ListByUser", ctx, int64(42), mock.MatchedBy(func(s *domain.BookingStatus) bool {
			return s != nil && *s == domain.StatusConfirmed
		})).Return([]*domain.Booking{sampleBooking()}, nil)

		resp, err := NewService(repo, nopLogger{}).GetUserBookings(ctx, &models.GetUserBookingsRequest{
			UserID: 42,
			Status: ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		repo := &mockBookingRepository{}
		_, err := NewService(repo, nopLogger{}).GetUserBookings(ctx, &models.GetUserBookingsRequest{
			UserID: 42,
			Status: ptr.Ptr("archived"),
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	})
}
