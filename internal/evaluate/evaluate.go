// Package evaluate compares a normalized license API result against the
// locally configured expectations. Evaluation is a single pure pass with no
// I/O; the caller supplies the evaluation instant.
package evaluate

import (
	"math"
	"time"

	"github.com/VeduStorm/NovaCore/constant"
	"github.com/VeduStorm/NovaCore/model"
)

// mismatchMessages maps each check to its human-readable failure reason.
var mismatchMessages = map[string]string{
	constant.CheckAPISuccess:         constant.MismatchAPISuccess,
	constant.CheckLicenseActive:      constant.MismatchLicenseActive,
	constant.CheckKeyMatches:         constant.MismatchKey,
	constant.CheckDiscordMatches:     constant.MismatchDiscord,
	constant.CheckProductNameMatches: constant.MismatchProductName,
	constant.CheckProductIDMatches:   constant.MismatchProductID,
	constant.CheckNotExpired:         constant.MismatchExpired,
}

// expiryLayouts are tried in order when parsing the server-reported expiry.
// Anything unparseable is treated as "no expiry".
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Evaluate produces a Verdict for the given config and normalized result.
func Evaluate(cfg model.LicenseConfig, res model.NormalizedResult, now time.Time) model.Verdict {
	if res.IsInvalidKey() {
		return invalidKeyVerdict(res.Invalid)
	}

	rec := res.Record

	checks := map[string]bool{
		constant.CheckAPISuccess:         apiSuccess(rec),
		constant.CheckLicenseActive:      rec.Status == constant.LicenseStatusActive,
		constant.CheckKeyMatches:         rec.LicenseKey == cfg.Key,
		constant.CheckDiscordMatches:     optionalMatch(cfg.DiscordID, rec.Customer.DiscordID),
		constant.CheckProductNameMatches: optionalMatch(cfg.ProductName, rec.Product.Name),
		constant.CheckProductIDMatches:   optionalMatch(cfg.ProductID, rec.Product.ID),
	}

	expiresAt, hasExpiry := parseExpiry(rec.ExpiresAt)

	// Strict comparison: an expiry exactly equal to now counts as expired.
	notExpired := true
	if hasExpiry {
		notExpired = expiresAt.After(now)
	}

	checks[constant.CheckNotExpired] = notExpired

	v := model.Verdict{
		Checks:       checks,
		UsedIPsCount: len(rec.UsedIPs),
		MaxIPs:       rec.MaxIPs,
		Message:      rec.Message,
	}

	v.RemainingIPs = v.MaxIPs - v.UsedIPsCount
	if v.RemainingIPs < 0 {
		v.RemainingIPs = 0
	}

	if hasExpiry {
		expiry := expiresAt
		days := int(math.Floor(expiry.Sub(now).Hours() / 24))
		v.ExpiresAt = &expiry
		v.DaysToExpiry = &days
	}

	for _, name := range constant.CheckOrder {
		if !checks[name] {
			v.Mismatches = append(v.Mismatches, mismatchMessages[name])
		}
	}

	v.OK = len(v.Mismatches) == 0

	return v
}

// invalidKeyVerdict is terminal: no further checks run.
func invalidKeyVerdict(inv *model.InvalidKey) model.Verdict {
	checks := make(map[string]bool, len(constant.CheckOrder))
	for _, name := range constant.CheckOrder {
		checks[name] = false
	}

	return model.Verdict{
		OK:         false,
		Checks:     checks,
		Mismatches: []string{constant.MismatchInvalidKey},
		ErrorType:  constant.ErrorTypeInvalidLicenseKey,
		ErrorHTTP:  "404 Not Found",
		Message:    inv.Message,
	}
}

// apiSuccess tolerates APIs that omit explicit success markers: an absent
// success flag passes as long as the status text, when present, says success.
func apiSuccess(rec *model.LicenseRecord) bool {
	if rec.Success != nil {
		return *rec.Success
	}

	if rec.StatusText == nil {
		return true
	}

	return *rec.StatusText == constant.StatusTextSuccess
}

// optionalMatch implements the skip rule: when either side lacks a value the
// check passes without recording a mismatch.
func optionalMatch(expected, reported *string) bool {
	if expected == nil || reported == nil {
		return true
	}

	return *expected == *reported
}

func parseExpiry(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
