package handler

import (
	"errors"
	"net/http"

	"shopfx/internal/currency"
	"shopfx/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetRateResponse struct {
	Code string `json:"code" example:"GBP"`
	Rate string `json:"rate" example:"0.7500"`
}

// GetLatestRate godoc
// @Summary Latest exchange rate
// @Description Most recent recorded rate for a currency, per 1 unit of the primary currency
// @Tags Rates
// @Produce json
// @Param code path string true "ISO 4217 code"
// @Success 200 {object} GetRateResponse
// @Failure 404 {object} errorResponse
// @Router /rates/{code} [get]
func (h *Handler) GetLatestRate(w http.ResponseWriter, r *http.Request) {
	code := currency.NormalizeCode(chi.URLParam(r, "code"))

	if _, err := h.registry.Lookup(r.Context(), code); err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			writeError(w, http.StatusNotFound, "currency not found")
			return
		}
		msg := "couldn't look up the currency this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetLatestRate", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	rate, err := h.rates.LatestRate(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNoRateAvailable) {
			writeError(w, http.StatusNotFound, "no rate recorded")
			return
		}
		msg := "couldn't get the latest rate this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetLatestRate", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetRateResponse{Code: code, Rate: rate.StringFixed(4)})
}
