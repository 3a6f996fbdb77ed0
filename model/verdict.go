package model

import "time"

// Verdict is the structured result of comparing a license record against the
// local expectations. Constructed fresh per verification, immutable once
// returned.
type Verdict struct {
	// OK is true iff Mismatches is empty
	OK bool

	// Checks maps each named predicate to its outcome; skipped checks are
	// recorded as passing
	Checks map[string]bool

	// Mismatches holds one human-readable reason per failing, non-skipped
	// check, in fixed check order
	Mismatches []string

	// ExpiresAt and DaysToExpiry are absent when the server reports no
	// parseable expiry. DaysToExpiry is a floor and may be negative.
	ExpiresAt    *time.Time
	DaysToExpiry *int

	RemainingIPs int
	MaxIPs       int
	UsedIPsCount int

	// ErrorType is empty or constant.ErrorTypeInvalidLicenseKey
	ErrorType string
	// ErrorHTTP carries HTTP-level diagnostics when present
	ErrorHTTP string
	// Message is the server-provided message, when any
	Message string
}
