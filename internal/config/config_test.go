package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"HAIRFALLBACK_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("HAIRFALLBACK_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Strategy != "fallback" || cfg.ScanPolicy != "band" || cfg.CatalogPath != "fallbacks.yaml" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HAIRFALLBACK_STRATEGY", "strict")
	t.Setenv("HAIRFALLBACK_ASSET_DB", "/tmp/assets.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Strategy != "strict" || cfg.AssetDB != "/tmp/assets.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	base := Config{CatalogPath: "fallbacks.yaml", AssetRoot: "Textures", Strategy: "fallback", ListenAddr: "localhost:50061"}

	got := base.Merge(Config{Strategy: "strict", AssetDB: "pack.db"})
	if got.Strategy != "strict" || got.AssetDB != "pack.db" {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.CatalogPath != "fallbacks.yaml" || got.AssetRoot != "Textures" || got.ListenAddr != "localhost:50061" {
		t.Fatalf("unset fields changed: %+v", got)
	}
	if base.Strategy != "fallback" {
		t.Fatal("merge mutated the receiver")
	}
	if got := base.Merge(Config{}); got != base {
		t.Fatalf("empty override changed config: %+v", got)
	}
}
