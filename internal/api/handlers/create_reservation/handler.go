package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/HMS-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "дата выезда должна быть позже даты заезда"
	msgGuestNotFound      = "гость не найден"
	msgRoomNotFound       = "комната не найдена"
	msgRoomInactive       = "комната выведена из эксплуатации"
	msgCapacityExceeded   = "число гостей превышает вместимость комнаты"
	msgOverlapConflict    = "комната уже забронирована на выбранные даты"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrOverlapConflict):
			h.logger.Warn("POST /reservations - Overlap conflict: room_id=%d, checkin=%s, checkout=%s",
				req.RoomID, req.Checkin, req.Checkout)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, createReservation.ErrGuestNotFound):
			h.logger.Warn("POST /reservations - Guest not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgGuestNotFound)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrRoomInactive):
			h.logger.Warn("POST /reservations - Room inactive: room_id=%d", req.RoomID)
			handlers.RespondUnprocessable(w, msgRoomInactive)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: room_id=%d, guests=%d",
				req.RoomID, req.GuestCount)
			handlers.RespondUnprocessable(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrInvalidDateRange):
			h.logger.Warn("POST /reservations - Invalid date range: checkin=%s, checkout=%s",
				req.Checkin, req.Checkout)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: room_id=%d, error=%v",
				req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reference=%s, room_id=%d",
		result.ReferenceCode, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
