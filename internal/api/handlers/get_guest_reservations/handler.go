package get_guest_reservations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

const (
	msgInvalidGuestID = "некорректный ID гостя"
	msgInvalidStatus  = "некорректный статус бронирования"
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

// GuestReservationsResponse HTTP модель истории бронирований гостя
type GuestReservationsResponse struct {
	GuestID      int64                              `json:"guestId"`
	Reservations []handlers.ReservationItemResponse `json:"reservations"`
}

// Handle GET /api/v1/guests/{guestId}/reservations?status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guestIDStr := vars["guestId"]

	guestID, err := strconv.ParseInt(guestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /guests/{id}/reservations - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	filter := domain.GuestReservationsFilter{GuestID: guestID}

	query := r.URL.Query()
	if rawStatus := query.Get("status"); rawStatus != "" {
		status := domain.ReservationStatus(rawStatus)
		if !status.IsValid() {
			h.logger.Warn("GET /guests/{id}/reservations - Invalid status: %q", rawStatus)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}
	filter.IncludeInactive = query.Get("includeInactive") == "true"

	list, err := h.service.GetByGuest(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /guests/{id}/reservations - Failed to list reservations: guest_id=%d, error=%v",
			guestID, err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]handlers.ReservationItemResponse, 0, len(list))
	for _, res := range list {
		items = append(items, handlers.ReservationItem(res))
	}

	h.logger.Info("GET /guests/{id}/reservations - Retrieved %d reservations: guest_id=%d", len(items), guestID)
	handlers.RespondJSON(w, http.StatusOK, GuestReservationsResponse{
		GuestID:      guestID,
		Reservations: items,
	})
}
