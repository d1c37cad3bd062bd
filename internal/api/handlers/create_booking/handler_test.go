package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ParkBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/ParkBookingService/internal/usecase/create_booking"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"status":"confirmed","items":[{"scheduleId":5,"date":"2026-07-14","numberOfAdults":2}]}`

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucResp     *createBooking.Response
		ucErr      error
		wantStatus int
	}{
		{
			name:       "бронирование создано",
			body:       validBody,
			ucResp:     &createBooking.Response{ID: 100, UserID: 42, Status: "confirmed"},
			wantStatus: http.StatusCreated,
		},
		{name: "некорректный JSON", body: `{"items":`, wantStatus: http.StatusBadRequest},
		{name: "неизвестное поле", body: `{"companyId":1}`, wantStatus: http.StatusBadRequest},
		{name: "не хватает мест", body: validBody, ucErr: fmt.Errorf("%w: schedule 5", createBooking.ErrNotEnoughSeats), wantStatus: http.StatusConflict},
		{name: "конфликт транзакций", body: validBody, ucErr: createBooking.ErrConflict, wantStatus: http.StatusConflict},
		{name: "расписание не найдено", body: validBody, ucErr: createBooking.ErrScheduleNotFound, wantStatus: http.StatusNotFound},
		{name: "дата в прошлом", body: validBody, ucErr: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "некорректные данные", body: validBody, ucErr: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "внутренняя ошибка", body: validBody, ucErr: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
				return req.UserID == 42 && req.Status == "confirmed" && len(req.Items) == 1 && req.Items[0].ScheduleID == 5
			})).Return(tt.ucResp, tt.ucErr)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			req = req.WithContext(middleware.WithUser(req.Context(), 42, false))
			rec := httptest.NewRecorder()

			NewHandler(uc, nopLogger{}).Handle(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_MissingUser(t *testing.T) {
	uc := &mockUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
