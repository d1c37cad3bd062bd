package update_seats_adjustment

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
	msgInvalidAdjustmentID = "некорректный ID корректировки"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "корректировка не найдена"
	msgInvalidData         = "некорректные данные корректировки"
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

// Handle PUT /api/v1/seats-adjustments/{adjustmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adjustmentID, err := strconv.ParseInt(mux.Vars(r)["adjustmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /seats-adjustments/{id} - Invalid adjustment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdjustmentID)
		return
	}

	var req models.AdjustmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /seats-adjustments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	adj, err := h.service.Update(r.Context(), adjustmentID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, adjustments.ErrAdjustmentNotFound):
			h.logger.Warn("PUT /seats-adjustments/{id} - Adjustment not found: adjustment_id=%d", adjustmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, adjustments.ErrInvalidInput):
			h.logger.Warn("PUT /seats-adjustments/{id} - Invalid data: adjustment_id=%d, error=%v", adjustmentID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /seats-adjustments/{id} - Failed to update adjustment: adjustment_id=%d, error=%v",
				adjustmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /seats-adjustments/{id} - Adjustment updated: adjustment_id=%d, user_id=%d", adjustmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, adj)
}
