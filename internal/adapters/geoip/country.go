package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// CountryResolver answers country lookups from a MaxMind GeoIP2 database.
type CountryResolver struct {
	reader *geoip2.Reader
}

func Open(dbPath string) (*CountryResolver, error) {
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %q: %w", dbPath, err)
	}
	return &CountryResolver{reader: reader}, nil
}

func (r *CountryResolver) CountryCode(ip net.IP) (string, error) {
	record, err := r.reader.Country(ip)
	if err != nil {
		return "", fmt.Errorf("failed to resolve country for %s: %w", ip, err)
	}
	if record.Country.IsoCode == "" {
		return "", fmt.Errorf("no country recorded for %s", ip)
	}
	return record.Country.IsoCode, nil
}

func (r *CountryResolver) Close() error { return r.reader.Close() }
