package handler

import (
	"net/http"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/middleware"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// trackedBonusRequest отличает отсутствующий is_active от явного false.
type trackedBonusRequest struct {
	model.TrackedBonus
	IsActive *bool `json:"is_active"`
}

func (req trackedBonusRequest) trackedBonus(defaultActive bool) model.TrackedBonus {
	tb := req.TrackedBonus
	tb.IsActive = defaultActive
	if req.IsActive != nil {
		tb.IsActive = *req.IsActive
	}
	return tb
}

// ListTrackedBonuses возвращает отслеживаемые бонусы обоих участников.
func (h *Handler) ListTrackedBonuses(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListTrackedBonuses(r.Context())
	if err != nil {
		h.fail(w, r, "list tracked bonuses", err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// ListPlayerTrackedBonuses возвращает бонусы участника с вычисляемыми полями.
func (h *Handler) ListPlayerTrackedBonuses(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.GetPlayerIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	archived, err := queryBool(r, "archived")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "archived must be a boolean")
		return
	}
	f := catalog.TrackedFilter{
		Status:       r.URL.Query().Get("status"),
		ShowArchived: archived,
		Search:       r.URL.Query().Get("q"),
	}
	if f.Status != "" && f.Status != catalog.StatusAll && !lifecycle.IsKnown(model.BonusStatus(f.Status)) {
		h.writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	views, err := h.service.ListPlayerTrackedBonuses(r.Context(), playerID, f)
	if err != nil {
		h.fail(w, r, "list player tracked bonuses", err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

// GetTrackedBonus возвращает отслеживаемый бонус.
func (h *Handler) GetTrackedBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid tracked bonus id")
		return
	}

	v, err := h.service.GetTrackedBonus(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get tracked bonus", err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// CreateTrackedBonus начинает отслеживание бонуса участником.
func (h *Handler) CreateTrackedBonus(w http.ResponseWriter, r *http.Request) {
	var req trackedBonusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tb := req.trackedBonus(true)
	tb.ID = 0
	v, err := h.service.CreateTrackedBonus(r.Context(), tb)
	if err != nil {
		h.fail(w, r, "create tracked bonus", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, v)
}

// UpdateTrackedBonus заменяет поля отслеживаемого бонуса.
// Без is_active в теле сохраняется текущее значение.
func (h *Handler) UpdateTrackedBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid tracked bonus id")
		return
	}

	var req trackedBonusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	current, err := h.service.GetTrackedBonus(r.Context(), id)
	if err != nil {
		h.fail(w, r, "update tracked bonus", err)
		return
	}

	tb := req.trackedBonus(current.IsActive)
	tb.ID = id
	v, err := h.service.UpdateTrackedBonus(r.Context(), tb)
	if err != nil {
		h.fail(w, r, "update tracked bonus", err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// UpdateTrackedStatus меняет статус отслеживаемого бонуса и дописывает заметку.
func (h *Handler) UpdateTrackedStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid tracked bonus id")
		return
	}

	var upd lifecycle.StatusUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	v, err := h.service.UpdateTrackedStatus(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, "update tracked status", err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// DeleteTrackedBonus прекращает отслеживание бонуса.
func (h *Handler) DeleteTrackedBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid tracked bonus id")
		return
	}

	if err := h.service.DeleteTrackedBonus(r.Context(), id); err != nil {
		h.fail(w, r, "delete tracked bonus", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
