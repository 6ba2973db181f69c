// Health-check эндпоинт
package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/go-user-auth/internal/shared/errors"
)

// Ping проверяет доступность сервиса и его зависимостей.
//
// Ответы:
//   - 200 OK: сервис и БД доступны;
//   - 503 Service Unavailable: БД недоступна.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {string} string "OK"
// @Failure      503 {object} ErrorResponse "Database unavailable"
// @Router       /ping [get]
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, serr.ErrInternal)
		return
	}
	w.WriteHeader(http.StatusOK)
}
