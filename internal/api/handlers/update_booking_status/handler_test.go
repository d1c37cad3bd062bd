package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ParkBookingService/internal/api/middleware"
	updateBookingStatus "github.com/m04kA/ParkBookingService/internal/usecase/update_booking_status"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateBookingStatus.Request) (*updateBookingStatus.Response, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*updateBookingStatus.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		body       string
		isAdmin    bool
		ucResp     *updateBookingStatus.Response
		ucErr      error
		wantStatus int
	}{
		{
			name:       "подтверждение",
			bookingID:  "10",
			body:       `{"status":"confirmed"}`,
			ucResp:     &updateBookingStatus.Response{ID: 10, PreviousStatus: "draft", Status: "confirmed"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "администратор отклоняет",
			bookingID:  "10",
			body:       `{"status":"declined"}`,
			isAdmin:    true,
			ucResp:     &updateBookingStatus.Response{ID: 10, PreviousStatus: "in_progress", Status: "declined"},
			wantStatus: http.StatusOK,
		},
		{name: "некорректный ID", bookingID: "x", body: `{"status":"confirmed"}`, wantStatus: http.StatusBadRequest},
		{name: "пустое тело", bookingID: "10", body: ``, wantStatus: http.StatusBadRequest},
		{name: "не найдено", bookingID: "10", body: `{"status":"confirmed"}`, ucErr: updateBookingStatus.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "чужое бронирование", bookingID: "10", body: `{"status":"confirmed"}`, ucErr: updateBookingStatus.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "неизвестный статус", bookingID: "10", body: `{"status":"archived"}`, ucErr: updateBookingStatus.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "недопустимый переход", bookingID: "10", body: `{"status":"draft"}`, ucErr: updateBookingStatus.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "нет мест", bookingID: "10", body: `{"status":"confirmed"}`, ucErr: updateBookingStatus.ErrNotEnoughSeats, wantStatus: http.StatusConflict},
		{name: "конфликт", bookingID: "10", body: `{"status":"confirmed"}`, ucErr: updateBookingStatus.ErrConflict, wantStatus: http.StatusConflict},
		{name: "внутренняя ошибка", bookingID: "10", body: `{"status":"confirmed"}`, ucErr: updateBookingStatus.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateBookingStatus.Request) bool {
				return req.BookingID == 10 && req.UserID == 42 && req.IsAdmin == tt.isAdmin
			})).Return(tt.ucResp, tt.ucErr)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+tt.bookingID+"/status", strings.NewReader(tt.body))
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.bookingID})
			req = req.WithContext(middleware.WithUser(req.Context(), 42, tt.isAdmin))
			rec := httptest.NewRecorder()

			NewHandler(uc, nopLogger{}).Handle(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
