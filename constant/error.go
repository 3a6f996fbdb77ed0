package constant

// Structured error codes for license gate responses
const (
	ErrGateVerificationFailed = "NVC-0001"
	ErrGateLicenseInvalid     = "NVC-0002"
)
