package handler

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/Dan9191/finance-tracker/internal/utils"
)

// KeyRate returns the latest central bank key rate.
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	if h.market == nil {
		h.writeError(w, r, service.ErrNotConfigured)
		return
	}
	rate, err := h.market.KeyRate(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rate)
}

// Health reports whether the database is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		h.log.WithError(err).Error("Health check failed")
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
