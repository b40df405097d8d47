package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "which: nemo-instruct-2407\nsample_len: 150\nuse_cpu: true\nmodels_dir: /tmp/models\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Which != "nemo-instruct-2407" || cfg.SampleLen != 150 || !cfg.UseCPU || cfg.ModelsDir != "/tmp/models" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"which":"7b-v0.1","sample_len":64,"temperature":0.8,"top_k":40}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Which != "7b-v0.1" || cfg.SampleLen != 64 || cfg.Temperature != 0.8 || cfg.TopK != 40 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "which=\"7b-instruct-v0.2\"\nsample_len=256\ntop_p=0.9\nseed=42\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Which != "7b-instruct-v0.2" || cfg.SampleLen != 256 || cfg.TopP != 0.9 || cfg.Seed != 42 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error on missing file")
	}
}

func TestDefaultEnvOverrides(t *testing.T) {
	t.Setenv("MISTRALCHAT_MODELS_DIR", "/srv/models")
	t.Setenv("MISTRALCHAT_LOG_LEVEL", "debug")
	cfg := Default()
	if cfg.ModelsDir != "/srv/models" {
		t.Fatalf("models dir env override ignored: %q", cfg.ModelsDir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level env override ignored: %q", cfg.LogLevel)
	}
	if cfg.Seed != DefaultSeed || cfg.RepeatPenalty != DefaultRepeatPenalty {
		t.Fatalf("built-in defaults lost: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Which = "nemo-instruct-2407"
		cfg.SampleLen = 150
		return cfg
	}

	if err := func() error { c := valid(); return c.Validate() }(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing which", func(c *Config) { c.Which = "" }},
		{"zero sample_len", func(c *Config) { c.SampleLen = 0 }},
		{"negative sample_len", func(c *Config) { c.SampleLen = -5 }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"top_p above one", func(c *Config) { c.TopP = 1.5 }},
		{"negative top_k", func(c *Config) { c.TopK = -1 }},
		{"negative threads", func(c *Config) { c.Threads = -2 }},
		{"zero ctx_size", func(c *Config) { c.CtxSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestValidateModelFileBypassesWhich(t *testing.T) {
	cfg := Default()
	cfg.ModelFile = "/models/custom.gguf"
	cfg.SampleLen = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("model_file should satisfy the which requirement: %v", err)
	}
}
