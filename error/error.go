package error

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ConfigError records a failure to load or validate the license config.
// Always fatal to the run; never retried.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Msg)
	}

	return "config: " + e.Msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NetworkError records a transport failure or timeout on either the first
// attempt or the single permitted retry.
type NetworkError struct {
	// Attempt is 1 for the initial request, 2 for the 500-triggered fallback
	Attempt int
	Msg     string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Attempt > 1 {
		return fmt.Sprintf("network error (retry attempt): %s", e.Msg)
	}

	return "network error: " + e.Msg
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError records a well-formed HTTP response that the client cannot
// interpret. It carries the status and a bounded body preview for diagnostics.
type ProtocolError struct {
	StatusCode  int
	Reason      string
	ContentType string
	BodyPreview string
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("unexpected response %d %s", e.StatusCode, e.Reason)
	if e.BodyPreview != "" {
		msg += ": " + e.BodyPreview
	}

	return msg
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsProtocolError reports whether err is (or wraps) a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsConnectionError checks if an error is likely related to network connectivity
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Check for known connection error messages
	connectionErrors := []string{
		"connection refused",
		"no such host",
		"host unreachable",
		"i/o timeout",
		"no route to host",
		"network is unreachable",
		"operation timed out",
		"EOF",
		"connection reset by peer",
		"dial tcp",
		"TLS handshake",
		"context deadline exceeded",
		"operation canceled",
	}

	for _, msg := range connectionErrors {
		if strings.Contains(strings.ToLower(errStr), strings.ToLower(msg)) {
			return true
		}
	}

	// Check for specific error types
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Try to unwrap and check nested error
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return IsConnectionError(unwrapped)
	}

	return false
}
