package constant

// License-related constants
const (
	// LicenseStatusActive is the only server status accepted as active (exact, case-sensitive)
	LicenseStatusActive = "active"

	// StatusTextSuccess is the status text that counts as an implicit success marker
	StatusTextSuccess = "success"

	// ErrorTypeInvalidLicenseKey tags verdicts produced from a normalized invalid-key response
	ErrorTypeInvalidLicenseKey = "INVALID_LICENSE_KEY"
)

// Check names used as keys in Verdict.Checks
const (
	CheckAPISuccess         = "apiSuccess"
	CheckLicenseActive      = "licenseActive"
	CheckKeyMatches         = "keyMatches"
	CheckDiscordMatches     = "discordMatches"
	CheckProductNameMatches = "productNameMatches"
	CheckProductIDMatches   = "productIdMatches"
	CheckNotExpired         = "notExpired"
)

// CheckOrder fixes the order in which checks are evaluated, reported and
// their mismatch reasons accumulated
var CheckOrder = []string{
	CheckAPISuccess,
	CheckLicenseActive,
	CheckKeyMatches,
	CheckDiscordMatches,
	CheckProductNameMatches,
	CheckProductIDMatches,
	CheckNotExpired,
}

// Mismatch messages, one per failing check, appended in check order
const (
	MismatchInvalidKey     = "Invalid License Key"
	MismatchAPISuccess     = "API response did not indicate success"
	MismatchLicenseActive  = "License status is not active"
	MismatchKey            = "License key does not match configured key"
	MismatchDiscord        = "Discord ID does not match configured value"
	MismatchProductName    = "Product name does not match configured value"
	MismatchProductID      = "Product ID does not match configured value"
	MismatchExpired        = "License has expired"
)

// ExpiryThresholds defines license expiration warning thresholds
const (
	// DefaultMinExpiryDaysToNormalWarn is the threshold for normal expiry warnings
	DefaultMinExpiryDaysToNormalWarn = 30
	// DefaultMinExpiryDaysToUrgentWarn is the threshold for urgent expiry warnings
	DefaultMinExpiryDaysToUrgentWarn = 7
)
