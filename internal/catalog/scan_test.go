package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestScanFiltersGGUF(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"a.gguf",
		"b.GGUF", // case-insensitive
		"not-model.txt",
		"model.bin",
	}
	for _, f := range files {
		touch(t, dir, f)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.gguf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	models, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d: %+v", len(models), models)
	}
	for _, m := range models {
		if !strings.HasSuffix(strings.ToLower(m.ID), ".gguf") {
			t.Fatalf("id not gguf: %s", m.ID)
		}
		if !filepath.IsAbs(m.Path) {
			t.Fatalf("path not absolute: %s", m.Path)
		}
	}
}

func TestScanMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Scan(missing)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "models directory does not exist") {
		t.Fatalf("unhelpful error: %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("error does not name the directory: %v", err)
	}
}

func TestScanExtractsQuant(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "mistral-7b-v0.1.Q4_K_M.gguf")
	models, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(models) != 1 || models[0].Quant != "Q4_K_M" {
		t.Fatalf("unexpected models: %+v", models)
	}
}
