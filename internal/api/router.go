package api

import (
	_ "shopfx/docs"
	"shopfx/internal/api/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/currencies", h.ListCurrencies)
	router.Put("/api/v1/currencies/{code:[A-Za-z]{3}}/primary", h.SetPrimary)
	router.Get("/api/v1/rates/{code:[A-Za-z]{3}}", h.GetLatestRate)
	router.Get("/api/v1/price", h.GetPrice)
	return router
}
