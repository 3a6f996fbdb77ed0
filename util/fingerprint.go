package util

import (
	"github.com/LerianStudio/lib-commons/commons"
	"github.com/VeduStorm/NovaCore/model"
)

// Fingerprint derives a stable cache key for a license config. Two configs
// with the same endpoint and credentials share one cached verdict.
func Fingerprint(cfg model.LicenseConfig) string {
	material := cfg.URL + ":" + cfg.Key

	if cfg.ProductID != nil {
		material += ":" + *cfg.ProductID
	}

	return commons.HashSHA256(material)
}
