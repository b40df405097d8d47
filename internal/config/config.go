// Package config holds the invocation configuration for one mistralchat run.
// A Config is assembled once at process start (environment, optional config
// file, then command-line flags, in increasing precedence) and is immutable
// afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults for the generation pipeline.
const (
	DefaultSeed          = 299792458
	DefaultRepeatPenalty = 1.1
	DefaultRepeatLastN   = 64
	DefaultCtxSize       = 2048
	DefaultModelsDir     = "~/models/llm"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
)

// Config holds runtime parameters for a single chat invocation.
// Zero values mean "unspecified"; Validate rejects combinations that
// cannot produce a working pipeline.
type Config struct {
	// Model selection.
	Which     string `json:"which" yaml:"which" toml:"which"`
	ModelFile string `json:"model_file" yaml:"model_file" toml:"model_file"`
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`

	// Generation bounds and sampling.
	SampleLen     int     `json:"sample_len" yaml:"sample_len" toml:"sample_len"`
	Temperature   float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	TopP          float64 `json:"top_p" yaml:"top_p" toml:"top_p"`
	TopK          int     `json:"top_k" yaml:"top_k" toml:"top_k"`
	Seed          int     `json:"seed" yaml:"seed" toml:"seed"`
	RepeatPenalty float64 `json:"repeat_penalty" yaml:"repeat_penalty" toml:"repeat_penalty"`
	RepeatLastN   int     `json:"repeat_last_n" yaml:"repeat_last_n" toml:"repeat_last_n"`

	// Execution.
	UseCPU  bool `json:"use_cpu" yaml:"use_cpu" toml:"use_cpu"`
	Threads int  `json:"threads" yaml:"threads" toml:"threads"`
	CtxSize int  `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`

	// One-shot prompt; empty means interactive loop.
	Prompt string `json:"prompt" yaml:"prompt" toml:"prompt"`

	// Ambient.
	LogLevel    string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat   string `json:"log_format" yaml:"log_format" toml:"log_format"`
	MetricsFile string `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`
}

// Default returns a Config seeded with built-in defaults and environment
// overrides (MISTRALCHAT_MODELS_DIR, MISTRALCHAT_LOG_LEVEL,
// MISTRALCHAT_LOG_FORMAT).
func Default() Config {
	cfg := Config{
		ModelsDir:     DefaultModelsDir,
		Seed:          DefaultSeed,
		RepeatPenalty: DefaultRepeatPenalty,
		RepeatLastN:   DefaultRepeatLastN,
		CtxSize:       DefaultCtxSize,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
	if v := os.Getenv("MISTRALCHAT_MODELS_DIR"); v != "" {
		cfg.ModelsDir = v
	}
	if v := os.Getenv("MISTRALCHAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MISTRALCHAT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return cfg
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Validate checks the assembled configuration. Which and SampleLen are the
// two mandatory inputs of an invocation; everything else has a workable
// default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Which) == "" && strings.TrimSpace(c.ModelFile) == "" {
		return fmt.Errorf("missing required --which (or model_file)")
	}
	if c.SampleLen <= 0 {
		return fmt.Errorf("invalid sample_len: %d (must be a positive integer)", c.SampleLen)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("invalid temperature: %g (must be >= 0)", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("invalid top_p: %g (must be in [0,1])", c.TopP)
	}
	if c.TopK < 0 {
		return fmt.Errorf("invalid top_k: %d (must be >= 0)", c.TopK)
	}
	if c.RepeatPenalty < 0 {
		return fmt.Errorf("invalid repeat_penalty: %g (must be >= 0)", c.RepeatPenalty)
	}
	if c.RepeatLastN < 0 {
		return fmt.Errorf("invalid repeat_last_n: %d (must be >= 0)", c.RepeatLastN)
	}
	if c.Threads < 0 {
		return fmt.Errorf("invalid threads: %d (must be >= 0)", c.Threads)
	}
	if c.CtxSize <= 0 {
		return fmt.Errorf("invalid ctx_size: %d (must be positive)", c.CtxSize)
	}
	return nil
}
