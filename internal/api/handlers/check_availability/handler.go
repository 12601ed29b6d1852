package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

const (
	msgMissingDates      = "параметры checkin и checkout обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange  = "дата выезда должна быть позже даты заезда"
	msgInvalidRoomTypeID = "некорректный ID типа комнаты"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?checkin=YYYY-MM-DD&checkout=YYYY-MM-DD&roomTypeId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	checkinStr := query.Get("checkin")
	checkoutStr := query.Get("checkout")
	if checkinStr == "" || checkoutStr == "" {
		h.logger.Warn("GET /availability - Missing date parameters")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	checkin, err := types.ParseDate(checkinStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid checkin date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	checkout, err := types.ParseDate(checkoutStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid checkout date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &checkAvailability.Request{
		Checkin:  checkin,
		Checkout: checkout,
	}

	if rawTypeID := query.Get("roomTypeId"); rawTypeID != "" {
		roomTypeID, err := strconv.ParseInt(rawTypeID, 10, 64)
		if err != nil || roomTypeID <= 0 {
			h.logger.Warn("GET /availability - Invalid room type ID: %q", rawTypeID)
			handlers.RespondBadRequest(w, msgInvalidRoomTypeID)
			return
		}
		req.RoomTypeID = &roomTypeID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /availability - Invalid date range: checkin=%s, checkout=%s", checkin, checkout)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /availability - Failed to check availability: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Found %d available rooms: checkin=%s, checkout=%s",
		len(result.Rooms), checkin, checkout)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
