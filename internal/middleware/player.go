// Package middleware содержит HTTP middleware трекера бонусов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/bonus-tracker/internal/validation"
)

type contextKey string

const playerIDKey contextKey = "playerID"

// PlayerParam задаёт имя параметра маршрута с номером участника.
const PlayerParam = "playerID"

// PlayerGuard проверяет номер участника в маршруте и добавляет его в контекст запроса.
// Неизвестный участник даёт 404.
func PlayerGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, PlayerParam), 10, 64)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !validation.IsValidPlayerID(id) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		ctx := context.WithValue(r.Context(), playerIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPlayerIDFromContext извлекает номер участника из контекста запроса.
func GetPlayerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(playerIDKey).(int64)
	return id, ok
}
