package handler

import (
	"net/http"
	"strconv"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/earnings"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

func parseBonusFilter(r *http.Request) (catalog.BonusFilter, error) {
	q := r.URL.Query()
	f := catalog.BonusFilter{
		Search:        q.Get("q"),
		DirectDeposit: q.Get("direct_deposit"),
	}

	if raw := q.Get("bank_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, err
		}
		f.BankID = id
	}

	var err error
	if f.MinAmount, err = queryFloat(r, "min_amount"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = queryFloat(r, "max_amount"); err != nil {
		return f, err
	}
	return f, nil
}

// ListBonuses возвращает каталог бонусов с фильтрами и сортировкой из строки запроса.
func (h *Handler) ListBonuses(w http.ResponseWriter, r *http.Request) {
	f, err := parseBonusFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid filter")
		return
	}

	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && !catalog.IsSortField(sortBy) {
		h.writeError(w, http.StatusBadRequest, "unsupported sort field")
		return
	}
	desc := r.URL.Query().Get("order") == "desc"

	bonuses, err := h.service.ListBonuses(r.Context(), f, sortBy, desc)
	if err != nil {
		h.fail(w, r, "list bonuses", err)
		return
	}
	h.writeJSON(w, http.StatusOK, bonuses)
}

// GetBonus возвращает бонус.
func (h *Handler) GetBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bonus id")
		return
	}

	bonus, err := h.service.GetBonus(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get bonus", err)
		return
	}
	h.writeJSON(w, http.StatusOK, bonus)
}

// CreateBonus создаёт бонус.
func (h *Handler) CreateBonus(w http.ResponseWriter, r *http.Request) {
	var req model.Bonus
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.ID = 0

	bonus, err := h.service.CreateBonus(r.Context(), req)
	if err != nil {
		h.fail(w, r, "create bonus", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, bonus)
}

// UpdateBonus обновляет бонус.
func (h *Handler) UpdateBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bonus id")
		return
	}

	var req model.Bonus
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.ID = id

	bonus, err := h.service.UpdateBonus(r.Context(), req)
	if err != nil {
		h.fail(w, r, "update bonus", err)
		return
	}
	h.writeJSON(w, http.StatusOK, bonus)
}

// DeleteBonus удаляет бонус, который никто не отслеживает.
func (h *Handler) DeleteBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bonus id")
		return
	}

	if err := h.service.DeleteBonus(r.Context(), id); err != nil {
		h.fail(w, r, "delete bonus", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EstimateBonus рассчитывает доходность бонуса для депозита из строки запроса.
func (h *Handler) EstimateBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid bonus id")
		return
	}

	deposit, err := queryFloat(r, "deposit")
	if err != nil || deposit == nil || *deposit < 0 {
		h.writeError(w, http.StatusBadRequest, "deposit must be a non-negative number")
		return
	}
	days, err := queryInt(r, "days")
	if err != nil || days < 0 {
		h.writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}

	est, err := h.service.EstimateEarnings(r.Context(), id, *deposit, days)
	if err != nil {
		h.fail(w, r, "estimate bonus", err)
		return
	}
	h.writeJSON(w, http.StatusOK, est)
}

// Calculator рассчитывает доходность по произвольным параметрам без обращения к каталогу.
func (h *Handler) Calculator(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]float64, 3)
	for _, name := range []string{"deposit", "rate", "bonus"} {
		v, err := queryFloat(r, name)
		if err != nil || (v != nil && *v < 0) {
			h.writeError(w, http.StatusBadRequest, name+" must be a non-negative number")
			return
		}
		if v != nil {
			params[name] = *v
		}
	}
	days, err := queryInt(r, "days")
	if err != nil || days < 0 {
		h.writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}

	b := model.Bonus{BonusAmount: params["bonus"], InterestRate: params["rate"]}
	h.writeJSON(w, http.StatusOK, earnings.Estimate(b, params["deposit"], days))
}
