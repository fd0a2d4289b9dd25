package handler

import (
	"net/http"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

type bankRequest struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Notes   string `json:"notes"`
}

func (req bankRequest) bank() model.Bank {
	return model.Bank{Name: req.Name, Website: req.Website, Notes: req.Notes}
}

// ListBanks возвращает все банки.
func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.service.ListBanks(r.Context())
	if err != nil {
		h.fail(w, r, "list banks", err)
		return
	}
	h.writeJSON(w, http.StatusOK, banks)
}

// GetBank возвращает банк.
func (h *Handler) GetBank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	bank, err := h.service.GetBank(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get bank", err)
		return
	}
	h.writeJSON(w, http.StatusOK, bank)
}

// CreateBank создаёт банк.
func (h *Handler) CreateBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bank, err := h.service.CreateBank(r.Context(), req.bank())
	if err != nil {
		h.fail(w, r, "create bank", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, bank)
}

// UpdateBank обновляет банк.
func (h *Handler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	var req bankRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b := req.bank()
	b.ID = id
	bank, err := h.service.UpdateBank(r.Context(), b)
	if err != nil {
		h.fail(w, r, "update bank", err)
		return
	}
	h.writeJSON(w, http.StatusOK, bank)
}

// DeleteBank удаляет банк без бонусов.
func (h *Handler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	if err := h.service.DeleteBank(r.Context(), id); err != nil {
		h.fail(w, r, "delete bank", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBankBonuses возвращает бонусы банка.
func (h *Handler) ListBankBonuses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	bonuses, err := h.service.ListBankBonuses(r.Context(), id)
	if err != nil {
		h.fail(w, r, "list bank bonuses", err)
		return
	}
	if bonuses == nil {
		bonuses = []model.Bonus{}
	}
	h.writeJSON(w, http.StatusOK, bonuses)
}
