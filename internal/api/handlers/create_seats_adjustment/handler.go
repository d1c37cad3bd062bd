package create_seats_adjustment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkBookingService/internal/api/handlers"
	"github.com/m04kA/ParkBookingService/internal/api/middleware"
	"github.com/m04kA/ParkBookingService/internal/service/adjustments"
	"github.com/m04kA/ParkBookingService/internal/service/adjustments/models"
)

const (
	msgInvalidScheduleID  = "некорректный ID расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgScheduleNotFound   = "расписание не найдено"
	msgInvalidData        = "некорректные данные корректировки"
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

// Handle POST /api/v1/schedules/{scheduleId}/seats-adjustments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/seats-adjustments - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /schedules/{id}/seats-adjustments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AdjustmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/{id}/seats-adjustments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	adj, err := h.service.Create(r.Context(), scheduleID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, adjustments.ErrScheduleNotFound):
			h.logger.Warn("POST /schedules/{id}/seats-adjustments - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, adjustments.ErrInvalidInput):
			h.logger.Warn("POST /schedules/{id}/seats-adjustments - Invalid data: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /schedules/{id}/seats-adjustments - Failed to create adjustment: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules/{id}/seats-adjustments - Adjustment created: adjustment_id=%d, schedule_id=%d, user_id=%d",
		adj.ID, scheduleID, userID)
	handlers.RespondJSON(w, http.StatusCreated, adj)
}
