package handler

import (
	"net/http"

	"github.com/mmeshcher/bonus-tracker/internal/middleware"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// GetPlayerSettings возвращает настройки участника.
func (h *Handler) GetPlayerSettings(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.GetPlayerIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	ps, err := h.service.GetPlayerSettings(r.Context(), playerID)
	if err != nil {
		h.fail(w, r, "get player settings", err)
		return
	}
	h.writeJSON(w, http.StatusOK, ps)
}

// UpdatePlayerSettings сохраняет настройки участника.
func (h *Handler) UpdatePlayerSettings(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.GetPlayerIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	var req model.PlayerSettings
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.PlayerID = playerID

	ps, err := h.service.UpdatePlayerSettings(r.Context(), req)
	if err != nil {
		h.fail(w, r, "update player settings", err)
		return
	}
	h.writeJSON(w, http.StatusOK, ps)
}

// GetDashboard возвращает сводку по участникам и домохозяйству.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDashboard(r.Context())
	if err != nil {
		h.fail(w, r, "get dashboard", err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}
