package constant

import "time"

// HeaderConstants defines HTTP header names used in requests
const (
	// LicenseKeyHeader carries the license key credential on every request
	LicenseKeyHeader = "LICENSE_KEY"
)

// TimeConstants defines timeout values
const (
	// DefaultHTTPTimeout bounds each verification request
	DefaultHTTPTimeout = 15 * time.Second
)

// BodyPreviewLimit is the maximum number of response body bytes carried
// in protocol error diagnostics
const BodyPreviewLimit = 300
