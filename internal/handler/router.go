package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/middleware"
)

// NewRouter wires the dashboard endpoints.
func NewRouter(h *WeatherHandler, logger *zap.SugaredLogger) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.HandleHealth)
	r.Get("/weather", h.HandleWeather)
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/preferences", h.HandlePreferences)
	r.Put("/preferences/unit", h.HandleSetUnit)
	r.Post("/favorites/toggle", h.HandleToggleFavorite)

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
