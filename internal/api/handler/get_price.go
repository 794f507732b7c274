package handler

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"shopfx/internal/currency"
	"shopfx/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// sessionCurrencyCookie holds the shopper's explicit currency choice.
const sessionCurrencyCookie = "currency_code"

// shopperIDHeader identifies the shopper for the profile preference step.
const shopperIDHeader = "X-Shopper-ID"

type GetPriceResponse struct {
	Currency string `json:"currency" example:"GBP"`
	Amount   string `json:"amount" example:"0.99"`
	Display  string `json:"display" example:"£0.99 (GBP)"`
}

// GetPrice godoc
// @Summary Display price for the visitor
// @Description Convert an amount in the primary currency to the visitor's currency and format it
// @Tags Prices
// @Produce json
// @Param amount query string true "amount in the primary currency"
// @Param currency query string false "target ISO 4217 code; resolved from the request when absent"
// @Success 200 {object} GetPriceResponse
// @Failure 400 {object} errorResponse
// @Router /price [get]
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	rawAmount := strings.TrimSpace(r.URL.Query().Get("amount"))
	if rawAmount == "" {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount is not a valid decimal")
		return
	}

	code := currency.NormalizeCode(r.URL.Query().Get("currency"))
	if code == "" {
		code, err = h.resolver.CurrencyForRequest(r.Context(), requestInfo(r))
		if err != nil {
			h.writePricingError(w, err, code)
			return
		}
	}

	converted, err := h.engine.ConvertToCurrency(r.Context(), amount, code)
	if err != nil {
		h.writePricingError(w, err, code)
		return
	}

	display := h.registry.MoneyFormat(r.Context(), &converted, code)
	writeJSON(w, http.StatusOK, GetPriceResponse{
		Currency: code,
		Amount:   converted.StringFixed(2),
		Display:  display,
	})
}

func (h *Handler) writePricingError(w http.ResponseWriter, err error, code string) {
	if errors.Is(err, domain.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "no primary currency configured")
		return
	}
	msg := "couldn't price the amount this time"
	logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetPrice", "currency": code}).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

func requestInfo(r *http.Request) currency.RequestInfo {
	info := currency.RequestInfo{
		ShopperID: strings.TrimSpace(r.Header.Get(shopperIDHeader)),
		IP:        clientIP(r),
	}
	if cookie, err := r.Cookie(sessionCurrencyCookie); err == nil {
		info.SessionCurrency = cookie.Value
	}
	return info
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
