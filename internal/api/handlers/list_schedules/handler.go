package list_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkBookingService/internal/api/handlers"
	"github.com/m04kA/ParkBookingService/internal/service/schedules"
)

const (
	msgInvalidActivityID = "некорректный ID активности"
	msgActivityNotFound  = "активность не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{id}/schedules - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	result, err := h.service.ListByActivity(r.Context(), activityID)
	if err != nil {
		if errors.Is(err, schedules.ErrActivityNotFound) {
			h.logger.Warn("GET /activities/{id}/schedules - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)
			return
		}
		h.logger.Error("GET /activities/{id}/schedules - Failed to list schedules: activity_id=%d, error=%v",
			activityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /activities/{id}/schedules - Schedules retrieved: activity_id=%d, count=%d",
		activityID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
