package currency

import (
	"context"
	"fmt"

	"shopfx/internal/l10n"

	"github.com/shopspring/decimal"
)

var notAcceptedMessages = map[string]string{
	"en": "%s is not accepted",
	"de": "%s wird nicht akzeptiert",
	"es": "%s no se acepta",
	"fr": "%s n'est pas accepté",
}

// MoneyFormat renders an amount as "{symbol}{amount} ({code})", e.g.
// "€1.00 (EUR)". A nil amount is treated as zero. An unknown code yields
// a localized "X is not accepted" message instead of a formatted amount.
func (s *Service) MoneyFormat(ctx context.Context, amount *decimal.Decimal, code string) string {
	value := decimal.Zero
	if amount != nil {
		value = *amount
	}

	cur, err := s.Lookup(ctx, code)
	if err != nil {
		msg, _ := l10n.Lookup(notAcceptedMessages, s.locale, "en")
		return fmt.Sprintf(msg, NormalizeCode(code))
	}

	return fmt.Sprintf("%s%s (%s)", cur.Symbol, value.StringFixed(2), cur.Code)
}
