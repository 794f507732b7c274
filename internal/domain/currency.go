package domain

// Currency is a shop currency identified by its ISO 4217 code.
// At most one currency is primary at any time; the primary currency is
// always accepted. Countries holds the ISO 3166-1 alpha-2 codes of the
// countries the currency is associated with.
type Currency struct {
	Code        string
	Name        string
	Symbol      string
	MinorSymbol string
	Primary     bool
	Accepted    bool
	Countries   []string
}

// Offered reports whether the currency may be shown to shoppers or used
// as a conversion target.
func (c Currency) Offered() bool {
	return c.Accepted || c.Primary
}
