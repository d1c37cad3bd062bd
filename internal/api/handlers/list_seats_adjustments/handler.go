package list_seats_adjustments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkBookingService/internal/api/handlers"
	"github.com/m04kA/ParkBookingService/internal/service/adjustments"
	"github.com/m04kA/ParkBookingService/internal/service/adjustments/models"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgScheduleNotFound  = "расписание не найдено"
	msgInvalidPeriod     = "некорректный период, ожидаются даты YYYY-MM-DD"
)

type Handler struct {
	service AdjustmentService
	logger  Logger
}

func NewHandler(service AdjustmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/seats-adjustments
// Query params: from, to (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/seats-adjustments - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	query := r.URL.Query()
	result, err := h.service.List(r.Context(), &models.ListRequest{
		ScheduleID: scheduleID,
		From:       query.Get("from"),
		To:         query.Get("to"),
	})
	if err != nil {
		switch {
		case errors.Is(err, adjustments.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id}/seats-adjustments - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, adjustments.ErrInvalidInput):
			h.logger.Warn("GET /schedules/{id}/seats-adjustments - Invalid period: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /schedules/{id}/seats-adjustments - Failed to list adjustments: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules/{id}/seats-adjustments - Adjustments retrieved: schedule_id=%d, count=%d",
		scheduleID, len(result.Adjustments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
