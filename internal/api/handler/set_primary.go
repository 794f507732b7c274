package handler

import (
	"errors"
	"net/http"

	"shopfx/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// SetPrimary godoc
// @Summary Set the primary currency
// @Description Promote a currency to primary; the flag is cleared from all others
// @Tags Currencies
// @Param code path string true "ISO 4217 code"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /currencies/{code}/primary [put]
func (h *Handler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.registry.SetPrimary(r.Context(), code); err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			writeError(w, http.StatusNotFound, "currency not found")
			return
		}
		msg := "couldn't switch the primary currency this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "SetPrimary", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
