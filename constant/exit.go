package constant

// Process exit codes owned by the verification pipeline
const (
	// ExitOK means every check passed
	ExitOK = 0
	// ExitUnexpected is reserved for errors outside the known taxonomy
	ExitUnexpected = 1
	// ExitConfigError covers missing/unparsable config, missing fields and malformed URLs
	ExitConfigError = 2
	// ExitNetworkError covers transport failures, timeouts and uninterpretable responses
	ExitNetworkError = 3
	// ExitMismatch means the server record disagrees with the configured expectations
	ExitMismatch = 4
	// ExitInvalidKey means the server reported the key does not exist
	ExitInvalidKey = 5
)
