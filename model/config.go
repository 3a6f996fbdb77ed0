package model

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/LerianStudio/lib-commons/commons"
)

// LicenseConfig holds the locally configured expectations for a license
// verification run. It is constructed once per run and immutable thereafter.
type LicenseConfig struct {
	// URL is the absolute HTTP(S) endpoint of the license API
	URL string
	// Key is the opaque license key credential
	Key string

	// Optional expectations; nil means "do not check"
	DiscordID   *string
	ProductName *string
	ProductID   *string
}

// Validate checks the config invariants before any network call is made.
func (c *LicenseConfig) Validate() error {
	if commons.IsNilOrEmpty(&c.Key) {
		return errors.New("license key is required")
	}

	if commons.IsNilOrEmpty(&c.URL) {
		return errors.New("license API URL is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("license API URL is malformed: %w", err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("license API URL must be absolute http(s), got %q", c.URL)
	}

	return nil
}
