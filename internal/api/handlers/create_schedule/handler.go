package create_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkBookingService/internal/api/handlers"
	"github.com/m04kA/ParkBookingService/internal/service/schedules"
	"github.com/m04kA/ParkBookingService/internal/service/schedules/models"
)

const (
	msgInvalidActivityID  = "некорректный ID активности"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgActivityNotFound   = "активность не найдена"
	msgInvalidData        = "некорректные данные расписания"
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

// Handle POST /api/v1/activities/{activityId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /activities/{id}/schedules - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	var req models.ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activities/{id}/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Create(r.Context(), activityID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrActivityNotFound):
			h.logger.Warn("POST /activities/{id}/schedules - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /activities/{id}/schedules - Invalid data: activity_id=%d, error=%v", activityID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /activities/{id}/schedules - Failed to create schedule: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activities/{id}/schedules - Schedule created: schedule_id=%d, activity_id=%d",
		schedule.ID, activityID)
	handlers.RespondJSON(w, http.StatusCreated, schedule)
}
