package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCases(t *testing.T, dir, expected string) string {
	t.Helper()
	path := filepath.Join(dir, "cases.json")
	body := `{"cases": [{"character": {"hairstyle": "Hairs/Long"}, "expected_path": "` + expected + `"}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	if code := run([]string{"-h"}); code != 0 {
		t.Errorf("-h: expected exit 0, got %d", code)
	}
	if code := run(nil); code != 2 {
		t.Errorf("no fixture: expected exit 2, got %d", code)
	}
	if code := run([]string{"-no-such-flag"}); code != 2 {
		t.Errorf("bad flag: expected exit 2, got %d", code)
	}
}

func TestRunMissingFixture(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if code := run([]string{"-fixture", missing}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HAIRFALLBACK_AUDIT_DB", "")
	args := []string{"-strategy", "strict", "-assets", dir, "-json"}

	pass := writeCases(t, dir, "Hairs/Long")
	if code := run(append(args, "-fixture", pass)); code != 0 {
		t.Fatalf("passing fixture: expected exit 0, got %d", code)
	}

	fail := writeCases(t, t.TempDir(), "Hairs/Short")
	if code := run(append(args, "-fixture", fail)); code != 1 {
		t.Fatalf("failing fixture: expected exit 1, got %d", code)
	}
}
