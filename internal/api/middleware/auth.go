package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
)

// StaffIDHeader заголовок с идентификатором сотрудника.
// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовку.
const StaffIDHeader = "X-Staff-ID"

type contextKey string

const staffIDKey contextKey = "staffID"

// Auth требует заголовок X-Staff-ID и кладет ID сотрудника в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(StaffIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+StaffIDHeader)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+StaffIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает ID сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
