package sweep_expired

import (
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
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

// SweepResponse HTTP модель итога прохода очистки
type SweepResponse struct {
	Cancelled []handlers.ReservationItemResponse `json:"cancelled"`
	Failed    int                                `json:"failed"`
}

// Handle POST /api/v1/reservations/sweep-expired
//
// Проход идемпотентен: повторный вызов без новых просроченных
// pending-броней возвращает пустой список.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /reservations/sweep-expired - Sweep failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]handlers.ReservationItemResponse, 0, len(result.Cancelled))
	for _, res := range result.Cancelled {
		items = append(items, handlers.ReservationItem(res))
	}

	h.logger.Info("POST /reservations/sweep-expired - Sweep finished: cancelled=%d, failed=%d",
		result.Count(), result.Failed)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		Cancelled: items,
		Failed:    result.Failed,
	})
}
