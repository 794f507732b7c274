// Package l10n provides an ordered-fallback lookup over locale-keyed
// values: exact locale, then root language, then the site default, then
// any entry at all.
package l10n

import (
	"maps"
	"slices"
	"strings"
)

// Lookup resolves locale against values. A locale like "en-GB" or "en_GB"
// falls back to its root language "en" before the default; with nothing
// matching, the lexicographically first entry is returned so a populated
// catalog always yields something.
func Lookup[V any](values map[string]V, locale, fallback string) (V, bool) {
	if v, ok := values[locale]; ok {
		return v, true
	}
	if root := rootLanguage(locale); root != "" && root != locale {
		if v, ok := values[root]; ok {
			return v, true
		}
	}
	if v, ok := values[fallback]; ok {
		return v, true
	}
	for _, key := range slices.Sorted(maps.Keys(values)) {
		return values[key], true
	}
	var zero V
	return zero, false
}

func rootLanguage(locale string) string {
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		return locale[:i]
	}
	return locale
}
