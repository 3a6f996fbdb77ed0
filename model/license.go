package model

// LicenseRecord is the server's authoritative data about a license, with the
// wire nesting flattened. Field presence is interpreted by the evaluator, not
// here.
type LicenseRecord struct {
	Status     string
	LicenseKey string
	// ExpiresAt is the raw expiry string as reported by the server; parsing
	// is left to the evaluator so an unparseable value can be treated as
	// "no expiry"
	ExpiresAt string
	UsedIPs   []string
	MaxIPs    int

	Customer Customer
	Product  Product

	Success    *bool
	StatusText *string
	Message    string
}

// Customer identifies the license owner as reported by the server.
type Customer struct {
	DiscordID *string
}

// Product identifies what the license was issued for.
type Product struct {
	Name *string
	ID   *string
}

// InvalidKey is the canonical representation of "the key does not exist on
// the server", normalized from the API's idiosyncratic 404 shapes.
type InvalidKey struct {
	Message string
}

// NormalizedResult is a tagged union: exactly one of Record or Invalid is
// populated, never both.
type NormalizedResult struct {
	Record  *LicenseRecord
	Invalid *InvalidKey
}

// IsInvalidKey reports whether the result carries the invalid-key variant.
func (r NormalizedResult) IsInvalidKey() bool {
	return r.Invalid != nil
}
