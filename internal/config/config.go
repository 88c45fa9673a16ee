package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// #region config
// Config is the process configuration, read from HAIRFALLBACK_* variables.
// Exactly one asset source is used, in order of preference: AssetAddr,
// AssetDB, AssetRoot.
type Config struct {
	CatalogPath string `env:"HAIRFALLBACK_CATALOG" envDefault:"fallbacks.yaml"`
	AssetRoot   string `env:"HAIRFALLBACK_ASSET_ROOT" envDefault:"Textures"`
	AssetDB     string `env:"HAIRFALLBACK_ASSET_DB"`
	AssetAddr   string `env:"HAIRFALLBACK_ASSET_ADDR"`
	Strategy    string `env:"HAIRFALLBACK_STRATEGY" envDefault:"fallback"`
	ScanPolicy  string `env:"HAIRFALLBACK_SCAN_POLICY" envDefault:"band"`
	BaldPath    string `env:"HAIRFALLBACK_BALD_PATH" envDefault:"Things/Pawn/Humanlike/Hairs/Shaved"`
	AuditDB     string `env:"HAIRFALLBACK_AUDIT_DB"`
	ListenAddr  string `env:"HAIRFALLBACK_LISTEN_ADDR" envDefault:"localhost:50061"`
}

// #endregion config

// #region parse
// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge returns c with every non-empty field of override applied. Commands
// collect flag values into an override so flag parsing never depends on
// the environment being valid.
func (c Config) Merge(override Config) Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.CatalogPath, override.CatalogPath)
	set(&c.AssetRoot, override.AssetRoot)
	set(&c.AssetDB, override.AssetDB)
	set(&c.AssetAddr, override.AssetAddr)
	set(&c.Strategy, override.Strategy)
	set(&c.ScanPolicy, override.ScanPolicy)
	set(&c.BaldPath, override.BaldPath)
	set(&c.AuditDB, override.AuditDB)
	set(&c.ListenAddr, override.ListenAddr)
	return c
}

// #endregion parse
