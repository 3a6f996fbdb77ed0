// Package config loads and validates the license config file.
package config

import (
	"os"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/spf13/viper"

	"github.com/VeduStorm/NovaCore/constant"
	licErr "github.com/VeduStorm/NovaCore/error"
	"github.com/VeduStorm/NovaCore/model"
)

// fileConfig is the on-disk shape of the license config file.
type fileConfig struct {
	URL         string  `mapstructure:"url"`
	Key         string  `mapstructure:"key"`
	DiscordID   *string `mapstructure:"discord_id"`
	ProductName *string `mapstructure:"product_name"`
	ProductID   *string `mapstructure:"product_id"`
}

// Load reads the license config from path (or the default path when empty),
// validates it and returns the immutable LicenseConfig. Every failure comes
// back as a *licErr.ConfigError so the caller can map it to the config exit
// code.
func Load(path string, l log.Logger) (model.LicenseConfig, error) {
	if path == "" {
		path = constant.DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		l.Errorf("License config file not found at %s", path)
		return model.LicenseConfig{}, &licErr.ConfigError{Path: path, Msg: "config file not found", Err: err}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		l.Errorf("License config file could not be parsed: %s", err.Error())
		return model.LicenseConfig{}, &licErr.ConfigError{Path: path, Msg: "config file is not valid JSON", Err: err}
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		l.Errorf("License config has wrong field types: %s", err.Error())
		return model.LicenseConfig{}, &licErr.ConfigError{Path: path, Msg: "config fields have wrong types", Err: err}
	}

	cfg := model.LicenseConfig{
		URL:         raw.URL,
		Key:         raw.Key,
		DiscordID:   raw.DiscordID,
		ProductName: raw.ProductName,
		ProductID:   raw.ProductID,
	}

	if err := cfg.Validate(); err != nil {
		l.Errorf("Invalid license config: %s", err.Error())
		return model.LicenseConfig{}, &licErr.ConfigError{Path: path, Msg: err.Error(), Err: err}
	}

	return cfg, nil
}
