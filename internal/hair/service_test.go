package hair

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/hairfallback/internal/catalog"
	"github.com/danielpatrickdp/hairfallback/internal/config"
	"github.com/danielpatrickdp/hairfallback/internal/coverage"
	"github.com/danielpatrickdp/hairfallback/internal/logging"
	"github.com/danielpatrickdp/hairfallback/internal/resolver"
)

// #region helpers
const testCatalog = `
fallbacks:
  - name: short
    range: {start: 0, end: 30}
    candidates: [Fallback/Short]
  - name: medium
    range: {start: 31, end: 60}
    candidates: [Fallback/Medium]
`

// writeHair writes a 10x100 reference image whose centre column is opaque
// from the top down to row lastY.
func writeHair(t *testing.T, root, rel string, lastY int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 100))
	for y := 0; y <= lastY; y++ {
		img.Set(5, y, color.NRGBA{R: 90, G: 60, B: 20, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(root, filepath.FromSlash(rel)+".png")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "Textures")

	writeHair(t, root, "Hairs/Long_east", 89)
	writeHair(t, root, "Hairs/Spiky_east", 19)
	writeHair(t, root, "Hairs/Mop/Medium_south", 50)

	catPath := filepath.Join(dir, "fallbacks.yaml")
	if err := os.WriteFile(catPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	return config.Config{
		CatalogPath: catPath,
		AssetRoot:   root,
		Strategy:    "fallback",
		ScanPolicy:  "band",
		BaldPath:    resolver.DefaultBaldPath,
		AuditDB:     filepath.Join(dir, "audit.db"),
	}
}

func hooded(hairstyle string) coverage.Character {
	return coverage.Character{
		Name:             "Engie",
		Hairstyle:        hairstyle,
		HeadgearRendered: true,
		Garments: []coverage.Garment{{
			Label:  "hood",
			Groups: []coverage.BodyPartGroup{{Name: "UpperHead", CoverageLevel: 2, IsHead: true, Tag: coverage.TagMedium}},
		}},
	}
}

func build(t *testing.T, cfg config.Config) *Service {
	t.Helper()
	svc, err := Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

// #endregion helpers

// #region hair-path-tests
func TestHairPath_Uncovered(t *testing.T) {
	svc := build(t, testConfig(t))
	c := coverage.Character{Hairstyle: "Hairs/Long"}

	path, err := svc.HairPath(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "Hairs/Long" {
		t.Fatalf("expected native hair path, got %s", path)
	}
}

func TestHairPath_NativeVariant(t *testing.T) {
	svc := build(t, testConfig(t))

	path, err := svc.HairPath(context.Background(), hooded("Hairs/Mop"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "Hairs/Mop/Medium" {
		t.Fatalf("expected native variant, got %s", path)
	}
}

func TestHairPath_DecodedTagsReachNativeVariant(t *testing.T) {
	svc := build(t, testConfig(t))
	inputs := []string{
		`{"hairstyle":"Hairs/Mop","headgear_rendered":true,
			"garments":[{"label":"hood","groups":[{"name":"UpperHead","is_head":true,"tag":"medium"}]}]}`,
		`{"hairstyle":"Hairs/Mop","headgear_rendered":true,
			"garments":[{"label":"hood","groups":[{"name":"UpperHead","is_head":true,"coverage_level":2}]}]}`,
	}
	for i, in := range inputs {
		var c coverage.Character
		if err := json.Unmarshal([]byte(in), &c); err != nil {
			t.Fatalf("input %d: %v", i, err)
		}
		path, err := svc.HairPath(context.Background(), c)
		if err != nil {
			t.Fatalf("input %d: %v", i, err)
		}
		if path != "Hairs/Mop/Medium" {
			t.Fatalf("input %d: expected Hairs/Mop/Medium, got %s", i, path)
		}
	}
}

func TestHairPath_ComputedFallbackIsAudited(t *testing.T) {
	cfg := testConfig(t)
	svc := build(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		path, err := svc.HairPath(ctx, hooded("Hairs/Long"))
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if path != "Fallback/Short/Medium" {
			t.Fatalf("resolve %d: expected Fallback/Short/Medium, got %s", i, path)
		}
	}

	stats := svc.Resolver().Cache().Stats()
	if stats.Misses != 1 || stats.Hits != 2 {
		t.Fatalf("unexpected cache stats %+v", stats)
	}

	svc.Close()
	audit, err := logging.Open(cfg.AuditDB)
	if err != nil {
		t.Fatalf("open audit: %v", err)
	}
	defer audit.Close()
	entries, err := audit.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audited computation, got %d", len(entries))
	}
	e := entries[0]
	if e.Hairstyle != "Hairs/Long" || e.Percentage != 10 || e.RangeName != "short" || e.Chosen != "Fallback/Short" {
		t.Fatalf("unexpected audit entry %+v", e)
	}
}

func TestHairPath_MissingReferenceDegradesToBald(t *testing.T) {
	svc := build(t, testConfig(t))

	res, err := svc.Resolve(context.Background(), hooded("Hairs/Ghost"))
	if err != nil {
		t.Fatalf("expected degrade, got error %v", err)
	}
	if res.Path != resolver.DefaultBaldPath || res.Source != resolver.SourceBald {
		t.Fatalf("expected bald result, got %+v", res)
	}
}

func TestHairPath_CatalogGapIsError(t *testing.T) {
	svc := build(t, testConfig(t))

	_, err := svc.HairPath(context.Background(), hooded("Hairs/Spiky"))
	if !errors.Is(err, catalog.ErrNoFallbackRange) {
		t.Fatalf("expected ErrNoFallbackRange, got %v", err)
	}
}

func TestHairPath_StrictStrategy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Strategy = "strict"
	cfg.CatalogPath = filepath.Join(t.TempDir(), "unused.yaml")
	svc := build(t, cfg)

	path, err := svc.HairPath(context.Background(), hooded("Hairs/Long"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != resolver.DefaultBaldPath {
		t.Fatalf("expected bald path, got %s", path)
	}
}

// #endregion hair-path-tests

// #region build-tests
func TestBuild_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Strategy = "sometimes"
	if _, err := Build(cfg); err == nil {
		t.Error("expected strategy error")
	}

	cfg = testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Build(cfg); err == nil {
		t.Error("expected catalog error")
	}

	cfg = testConfig(t)
	cfg.ScanPolicy = "diagonal"
	if _, err := Build(cfg); err == nil {
		t.Error("expected scan policy error")
	}
}

func TestBuild_SQLiteAssets(t *testing.T) {
	cfg := testConfig(t)
	cfg.AssetDB = filepath.Join(t.TempDir(), "assets.db")
	svc := build(t, cfg)

	// The pack is empty, so the reference image is unavailable.
	path, err := svc.HairPath(context.Background(), hooded("Hairs/Long"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != resolver.DefaultBaldPath {
		t.Fatalf("expected bald path, got %s", path)
	}
}

// #endregion build-tests
