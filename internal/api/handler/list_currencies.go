package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type CurrencyView struct {
	Code        string `json:"code" example:"EUR"`
	Name        string `json:"name" example:"Euro"`
	Symbol      string `json:"symbol" example:"€"`
	MinorSymbol string `json:"minor_symbol" example:"c"`
	Primary     bool   `json:"primary"`
}

type ListCurrenciesResponse struct {
	Currencies []CurrencyView `json:"currencies"`
}

// ListCurrencies godoc
// @Summary List accepted currencies
// @Description Retrieve every currency the shop accepts, primary included
// @Tags Currencies
// @Produce json
// @Success 200 {object} ListCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	accepted, err := h.registry.ListAccepted(r.Context())
	if err != nil {
		msg := "couldn't list accepted currencies this time"
		logrus.WithError(err).WithField("handler", "ListCurrencies").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	views := make([]CurrencyView, 0, len(accepted))
	for _, cur := range accepted {
		views = append(views, CurrencyView{
			Code:        cur.Code,
			Name:        cur.Name,
			Symbol:      cur.Symbol,
			MinorSymbol: cur.MinorSymbol,
			Primary:     cur.Primary,
		})
	}

	writeJSON(w, http.StatusOK, ListCurrenciesResponse{Currencies: views})
}
