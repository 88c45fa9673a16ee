package assetstore

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// #region helpers
func opaqueImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// #endregion helpers

// #region dir-store-tests
func TestDirStore_PNG(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Hairs", "Mop", "Medium_south.png"), encodePNG(t, opaqueImage(4, 4)))

	s := NewDirStore(root)
	ctx := context.Background()

	if !s.Exists(ctx, "Hairs/Mop/Medium_south") {
		t.Fatal("expected asset to exist")
	}
	if s.Exists(ctx, "Hairs/Mop/High_south") {
		t.Fatal("expected missing asset")
	}

	img, err := s.LoadImage(ctx, "Hairs/Mop/Medium_south")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("expected width 4, got %d", img.Bounds().Dx())
	}
}

func TestDirStore_BMP(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, opaqueImage(3, 5)); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	writeFile(t, filepath.Join(root, "Hairs", "Bob_east.bmp"), buf.Bytes())

	img, err := NewDirStore(root).LoadImage(context.Background(), "Hairs/Bob_east")
	if err != nil {
		t.Fatalf("load bmp: %v", err)
	}
	if img.Bounds().Dy() != 5 {
		t.Fatalf("expected height 5, got %d", img.Bounds().Dy())
	}
}

func TestDirStore_Missing(t *testing.T) {
	_, err := NewDirStore(t.TempDir()).LoadImage(context.Background(), "Hairs/Nothing")
	if !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
}

func TestDirStore_Corrupt(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Broken.png"), []byte("not a png"))

	_, err := NewDirStore(root).LoadImage(context.Background(), "Broken")
	if !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
}

func TestDirStore_RejectsEscape(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	writeFile(t, filepath.Join(root, "secret.png"), encodePNG(t, opaqueImage(1, 1)))

	s := NewDirStore(inner)
	if s.Exists(context.Background(), "../secret") {
		t.Fatal("path escaping the root must not resolve")
	}
}

// #endregion dir-store-tests

// #region sqlite-store-tests
func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_PutAndLoad(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Put("Hairs/Mop_east", encodePNG(t, opaqueImage(2, 6))); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !s.Exists(ctx, "Hairs/Mop_east") {
		t.Fatal("expected asset to exist")
	}
	if s.Exists(ctx, "Hairs/Mop_west") {
		t.Fatal("expected missing asset")
	}

	img, err := s.LoadImage(ctx, "Hairs/Mop_east")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dy() != 6 {
		t.Fatalf("expected height 6, got %d", img.Bounds().Dy())
	}
}

func TestSQLiteStore_PutRejectsGarbage(t *testing.T) {
	s := openTestSQLite(t)
	if err := s.Put("bad", []byte("garbage")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	s := openTestSQLite(t)
	_, err := s.LoadImage(context.Background(), "nope")
	if !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
}

func TestSQLiteStore_Import(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Hairs", "Mop", "Low_south.png"), encodePNG(t, opaqueImage(1, 1)))
	writeFile(t, filepath.Join(root, "Hairs", "Mop_east.png"), encodePNG(t, opaqueImage(1, 1)))
	writeFile(t, filepath.Join(root, "README.txt"), []byte("ignored"))

	s := openTestSQLite(t)
	n, err := s.Import(root)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	paths, err := s.Paths(context.Background())
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	want := []string{"Hairs/Mop/Low_south", "Hairs/Mop_east"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

// #endregion sqlite-store-tests

// #region mem-store-tests
func TestMemStore_CountsLoads(t *testing.T) {
	s := NewMemStore()
	s.Set("a", opaqueImage(1, 1))
	ctx := context.Background()

	if _, err := s.LoadImage(ctx, "a"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.LoadImage(ctx, "b"); !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
	if s.Loads() != 2 {
		t.Fatalf("expected 2 loads, got %d", s.Loads())
	}
}

// #endregion mem-store-tests
