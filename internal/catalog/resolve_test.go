package catalog

import (
	"path/filepath"
	"testing"
)

func TestResolveMatchesVariant(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "mistral-7b-instruct-v0.2.Q4_K_M.gguf")
	touch(t, dir, "Mistral-Nemo-Instruct-2407.Q5_K_S.gguf")

	m, err := Resolve("nemo-instruct-2407", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.Name != "Mistral-Nemo-Instruct-2407" || m.Family != "mistral" || m.Quant != "Q5_K_S" {
		t.Fatalf("unexpected model: %+v", m)
	}
	if filepath.Base(m.Path) != "Mistral-Nemo-Instruct-2407.Q5_K_S.gguf" {
		t.Fatalf("wrong file resolved: %s", m.Path)
	}
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Resolve("70b-v3", t.TempDir())
	if err == nil || !IsUnknownVariant(err) {
		t.Fatalf("expected unknown-variant error, got %v", err)
	}
	if IsModelNotFound(err) {
		t.Fatal("unknown variant must not read as model-not-found")
	}
}

func TestResolveNoMatchingWeights(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "mistral-7b-v0.1.Q4_K_M.gguf")
	_, err := Resolve("nemo-instruct-2407", dir)
	if err == nil || !IsModelNotFound(err) {
		t.Fatalf("expected model-not-found, got %v", err)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "custom.Q8_0.gguf")
	path := filepath.Join(dir, "custom.Q8_0.gguf")

	m, err := ResolveFile(path)
	if err != nil {
		t.Fatalf("resolve file: %v", err)
	}
	if m.ID != "custom.Q8_0.gguf" || m.Quant != "Q8_0" || m.Path != path {
		t.Fatalf("unexpected model: %+v", m)
	}

	if _, err := ResolveFile(filepath.Join(dir, "missing.gguf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
