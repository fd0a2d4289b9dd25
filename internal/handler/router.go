package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	custommiddleware "github.com/mmeshcher/bonus-tracker/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware трекера.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	if len(h.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Encoding"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.RateLimit(h.opts.RateLimitRPS, h.opts.RateLimitBurst, h.logger))

		r.Route("/banks", func(r chi.Router) {
			r.Get("/", h.ListBanks)
			r.Post("/", h.CreateBank)
			r.Get("/{id}", h.GetBank)
			r.Put("/{id}", h.UpdateBank)
			r.Delete("/{id}", h.DeleteBank)
			r.Get("/{id}/bonuses", h.ListBankBonuses)
		})

		r.Route("/bonuses", func(r chi.Router) {
			r.Get("/", h.ListBonuses)
			r.Post("/", h.CreateBonus)
			r.Get("/{id}", h.GetBonus)
			r.Put("/{id}", h.UpdateBonus)
			r.Delete("/{id}", h.DeleteBonus)
			r.Get("/{id}/estimate", h.EstimateBonus)
		})

		r.Route("/tracked-bonuses", func(r chi.Router) {
			r.Get("/", h.ListTrackedBonuses)
			r.Post("/", h.CreateTrackedBonus)
			r.Get("/{id}", h.GetTrackedBonus)
			r.Put("/{id}", h.UpdateTrackedBonus)
			r.Delete("/{id}", h.DeleteTrackedBonus)
			r.Post("/{id}/status", h.UpdateTrackedStatus)
		})

		r.With(custommiddleware.PlayerGuard).Get("/players/{playerID}/tracked-bonuses", h.ListPlayerTrackedBonuses)

		r.Route("/player-settings/{playerID}", func(r chi.Router) {
			r.Use(custommiddleware.PlayerGuard)
			r.Get("/", h.GetPlayerSettings)
			r.Put("/", h.UpdatePlayerSettings)
		})

		r.Get("/dashboard", h.GetDashboard)
		r.Get("/calculator", h.Calculator)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
