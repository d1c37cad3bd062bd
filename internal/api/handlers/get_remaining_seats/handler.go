package get_remaining_seats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkBookingService/internal/api/handlers"
	getRemainingSeats "github.com/m04kA/ParkBookingService/internal/usecase/get_remaining_seats"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgScheduleNotFound  = "расписание не найдено"
)

type Handler struct {
	useCase GetRemainingSeatsUseCase
	logger  Logger
}

func NewHandler(useCase GetRemainingSeatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/remaining-seats
// Query params: date (required, YYYY-MM-DD в часовом поясе парка)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("GET /schedules/{id}/remaining-seats - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /schedules/{id}/remaining-seats - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getRemainingSeats.Request{
		ScheduleID: scheduleID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getRemainingSeats.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id}/remaining-seats - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getRemainingSeats.ErrInvalidInput):
			h.logger.Warn("GET /schedules/{id}/remaining-seats - Invalid date: schedule_id=%d, date=%s", scheduleID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /schedules/{id}/remaining-seats - Failed to compute availability: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules/{id}/remaining-seats - Availability computed: schedule_id=%d, date=%s, unlimited=%t",
		scheduleID, date, result.Unlimited)
	handlers.RespondJSON(w, http.StatusOK, result)
}
