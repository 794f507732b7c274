package currency

import (
	"context"
	"net"

	"shopfx/internal/adapters"

	"github.com/sirupsen/logrus"
)

// RequestInfo carries the request facts the resolver works from; the HTTP
// layer builds it from cookie, header and remote address.
type RequestInfo struct {
	SessionCurrency string
	ShopperID       string
	IP              string
}

// Resolver picks the currency for a visitor: session choice first, then
// the shopper's stored preference, then a geo-IP country match, then the
// primary currency. Every lookup failure falls through silently to the
// next step.
type Resolver struct {
	registry  adapters.CurrencyRegistry
	profiles  adapters.ProfileRepository
	countries adapters.CountryResolver
}

func (r *Resolver) CurrencyForRequest(ctx context.Context, req RequestInfo) (string, error) {
	if code := r.offeredCode(ctx, req.SessionCurrency); code != "" {
		return code, nil
	}

	if r.profiles != nil && req.ShopperID != "" {
		preferred, err := r.profiles.PreferredCurrency(ctx, req.ShopperID)
		if err != nil {
			logrus.WithError(err).WithField("shopper", req.ShopperID).Debug("profile currency lookup failed")
		} else if code := r.offeredCode(ctx, preferred); code != "" {
			return code, nil
		}
	}

	if code := r.currencyByIP(ctx, req.IP); code != "" {
		return code, nil
	}

	primary, err := r.registry.GetPrimary(ctx)
	if err != nil {
		return "", err
	}
	return primary.Code, nil
}

func (r *Resolver) offeredCode(ctx context.Context, code string) string {
	code = NormalizeCode(code)
	if code == "" {
		return ""
	}
	cur, err := r.registry.Lookup(ctx, code)
	if err != nil || !cur.Offered() {
		return ""
	}
	return cur.Code
}

func (r *Resolver) currencyByIP(ctx context.Context, rawIP string) string {
	if r.countries == nil || rawIP == "" {
		return ""
	}
	ip := net.ParseIP(rawIP)
	if ip == nil {
		return ""
	}
	country, err := r.countries.CountryCode(ip)
	if err != nil || country == "" {
		return ""
	}
	cur, err := r.registry.ByCountry(ctx, country)
	if err != nil {
		return ""
	}
	return cur.Code
}

// NewResolver constructs a Resolver; profiles and countries may be nil,
// in which case the corresponding resolution steps are skipped.
func NewResolver(registry adapters.CurrencyRegistry, profiles adapters.ProfileRepository, countries adapters.CountryResolver) *Resolver {
	return &Resolver{registry: registry, profiles: profiles, countries: countries}
}
