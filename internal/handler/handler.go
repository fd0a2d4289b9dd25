// Package handler содержит HTTP-обработчики API трекера бонусов.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
	"github.com/mmeshcher/bonus-tracker/internal/repository"
	"github.com/mmeshcher/bonus-tracker/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	ListBanks(ctx context.Context) ([]model.Bank, error)
	GetBank(ctx context.Context, id int64) (*model.Bank, error)
	CreateBank(ctx context.Context, b model.Bank) (*model.Bank, error)
	UpdateBank(ctx context.Context, b model.Bank) (*model.Bank, error)
	DeleteBank(ctx context.Context, id int64) error
	ListBankBonuses(ctx context.Context, bankID int64) ([]model.Bonus, error)

	ListBonuses(ctx context.Context, f catalog.BonusFilter, sortBy string, desc bool) ([]model.Bonus, error)
	GetBonus(ctx context.Context, id int64) (*model.Bonus, error)
	CreateBonus(ctx context.Context, b model.Bonus) (*model.Bonus, error)
	UpdateBonus(ctx context.Context, b model.Bonus) (*model.Bonus, error)
	DeleteBonus(ctx context.Context, id int64) error
	EstimateEarnings(ctx context.Context, bonusID int64, deposit float64, days int) (*model.Estimate, error)

	ListTrackedBonuses(ctx context.Context) ([]model.TrackedBonus, error)
	GetTrackedBonus(ctx context.Context, id int64) (*model.TrackedBonusView, error)
	ListPlayerTrackedBonuses(ctx context.Context, playerID int64, f catalog.TrackedFilter) ([]model.TrackedBonusView, error)
	CreateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error)
	UpdateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error)
	UpdateTrackedStatus(ctx context.Context, id int64, upd lifecycle.StatusUpdate) (*model.TrackedBonusView, error)
	DeleteTrackedBonus(ctx context.Context, id int64) error

	GetPlayerSettings(ctx context.Context, playerID int64) (*model.PlayerSettings, error)
	UpdatePlayerSettings(ctx context.Context, ps model.PlayerSettings) (*model.PlayerSettings, error)
	GetDashboard(ctx context.Context) (model.Dashboard, error)
}

// Options задаёт параметры маршрутизатора.
type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handler реализует HTTP-обработчики API трекера бонусов.
type Handler struct {
	service Service
	logger  *zap.Logger
	opts    Options
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, opts Options) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
		opts:    opts,
	}
}

var errNotFinite = errors.New("value must be a finite number")

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON кодирует ответ до записи заголовков; при ошибке кодирования отвечает 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err), zap.String("type", fmt.Sprintf("%T", v)))
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"Internal Server Error"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// fail переводит ошибку сервиса в HTTP-статус. Непредвиденные ошибки логируются.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	case errors.Is(err, repository.ErrBankExists):
		h.writeError(w, http.StatusConflict, "bank with this name already exists")
	case errors.Is(err, repository.ErrInUse):
		h.writeError(w, http.StatusConflict, "record is referenced by other records")
	case errors.Is(err, validation.ErrInvalid), errors.Is(err, repository.ErrInvalidReference):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error(op+" error", zap.Error(err), zap.String("path", r.URL.Path))
		h.writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s: %w", name, errNotFinite)
	}
	return &v, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
