package handler

import (
	"encoding/json"
	"net/http"

	"shopfx/internal/currency"
	"shopfx/internal/pricing"
	"shopfx/internal/rate"
)

type Handler struct {
	registry *currency.Service
	resolver *currency.Resolver
	engine   *pricing.Engine
	rates    *rate.Service
}

func NewHandler(registry *currency.Service, resolver *currency.Resolver, engine *pricing.Engine, rates *rate.Service) *Handler {
	return &Handler{registry: registry, resolver: resolver, engine: engine, rates: rates}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
