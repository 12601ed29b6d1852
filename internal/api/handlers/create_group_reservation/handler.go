package create_group_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	createGroupReservation "github.com/m04kA/HMS-ReservationService/internal/usecase/create_group_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "дата выезда должна быть позже даты заезда"
	msgGuestNotFound      = "гость не найден"
	msgRoomNotFound       = "одна из комнат не найдена"
	msgRoomInactive       = "одна из комнат выведена из эксплуатации"
	msgCapacityExceeded   = "число гостей превышает вместимость одной из комнат"
	msgOverlapConflict    = "одна из комнат уже забронирована на выбранные даты"
)

type Handler struct {
	useCase CreateGroupReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateGroupReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/group
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations/group - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations/group - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Группа бронируется целиком: любая ошибка означает, что не
		// создано ни одной брони
		switch {
		case errors.Is(err, createGroupReservation.ErrOverlapConflict):
			h.logger.Warn("POST /reservations/group - Overlap conflict: rooms=%v, checkin=%s, checkout=%s",
				req.RoomIDs, req.Checkin, req.Checkout)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, createGroupReservation.ErrGuestNotFound):
			h.logger.Warn("POST /reservations/group - Guest not found")
			handlers.RespondNotFound(w, msgGuestNotFound)

		case errors.Is(err, createGroupReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations/group - Room not found: rooms=%v", req.RoomIDs)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createGroupReservation.ErrRoomInactive):
			h.logger.Warn("POST /reservations/group - Room inactive: rooms=%v", req.RoomIDs)
			handlers.RespondUnprocessable(w, msgRoomInactive)

		case errors.Is(err, createGroupReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations/group - Capacity exceeded: rooms=%v, guests=%d",
				req.RoomIDs, req.GuestCount)
			handlers.RespondUnprocessable(w, msgCapacityExceeded)

		case errors.Is(err, createGroupReservation.ErrInvalidDateRange):
			h.logger.Warn("POST /reservations/group - Invalid date range: checkin=%s, checkout=%s",
				req.Checkin, req.Checkout)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createGroupReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/group - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations/group - Failed to create group reservation: rooms=%v, error=%v",
				req.RoomIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/group - Group reservation created successfully: guest_id=%d, rooms=%d",
		result.GuestID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
