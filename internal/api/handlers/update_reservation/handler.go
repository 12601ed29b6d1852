package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "бронирование не найдено"
	msgCannotEdit           = "бронирование в терминальном статусе нельзя изменить"
	msgOverlapConflict      = "комната уже забронирована на новые даты"
	msgCapacityExceeded     = "число гостей превышает вместимость комнаты"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	details, err := h.service.Update(r.Context(), reservationID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidStateForEdit):
			h.logger.Warn("PATCH /reservations/{id} - Cannot edit: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondUnprocessable(w, msgCannotEdit)

		case errors.Is(err, reservations.ErrOverlapConflict):
			h.logger.Warn("PATCH /reservations/{id} - Overlap conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, reservations.ErrCapacityExceeded):
			h.logger.Warn("PATCH /reservations/{id} - Capacity exceeded: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgCapacityExceeded)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reference=%s", details.ReferenceCode)
	handlers.RespondJSON(w, http.StatusOK, handlers.ReservationFromDetails(details))
}
