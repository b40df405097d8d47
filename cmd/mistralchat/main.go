package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"mistralchat/internal/catalog"
	"mistralchat/internal/chat"
	"mistralchat/internal/config"
	"mistralchat/internal/infer"
	"mistralchat/internal/logging"
	"mistralchat/internal/metrics"
)

// cliOptions holds raw flag values; buildConfig folds them over file and
// env defaults by precedence.
type cliOptions struct {
	configPath string
	fl         config.Config
}

func newRootCmd() (*cobra.Command, *cliOptions) {
	opts := &cliOptions{fl: config.Default()}

	cmd := &cobra.Command{
		Use:   "mistralchat",
		Short: "Chat with a local Mistral model from the command line",
		Long: `mistralchat runs a Mistral-family language model locally through
llama.cpp and talks to it from your terminal.

Pick a model variant with --which, bound the reply length with --sample-len,
and either pass --prompt for a one-shot completion or run without it for an
interactive loop (:quit to leave).

Examples:
  mistralchat --which nemo-instruct-2407 --sample-len 150 --cpu
  mistralchat --which 7b-instruct-v0.2 -n 256 --temperature 0.8 --top-p 0.9 \
      --prompt "Write a haiku about the ocean."`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runChat(cfg)
		},
	}

	f := cmd.Flags()
	fl := &opts.fl
	f.StringVar(&fl.Which, "which", "", "model variant to load (e.g. 7b-instruct-v0.2, nemo-instruct-2407)")
	f.IntVarP(&fl.SampleLen, "sample-len", "n", 0, "maximum number of tokens to generate (required, > 0)")
	f.BoolVar(&fl.UseCPU, "cpu", false, "run on CPU rather than on the accelerator")
	f.StringVar(&fl.Prompt, "prompt", "", "one-shot prompt; empty starts the interactive loop")
	f.Float64Var(&fl.Temperature, "temperature", 0, "sampling temperature; 0 means greedy decoding")
	f.Float64Var(&fl.TopP, "top-p", 0, "nucleus sampling probability cutoff")
	f.IntVar(&fl.TopK, "top-k", 0, "only sample among the top K tokens")
	f.IntVar(&fl.Seed, "seed", fl.Seed, "random seed for sampling")
	f.Float64Var(&fl.RepeatPenalty, "repeat-penalty", fl.RepeatPenalty, "penalty for repeating tokens; 1.0 disables")
	f.IntVar(&fl.RepeatLastN, "repeat-last-n", fl.RepeatLastN, "context window for the repeat penalty")
	f.StringVar(&fl.ModelFile, "model-file", "", "explicit GGUF weight file, bypassing --which resolution")
	f.StringVar(&fl.ModelsDir, "models-dir", fl.ModelsDir, "directory scanned for *.gguf model files")
	f.IntVar(&fl.Threads, "threads", 0, "CPU threads for inference (0 = all cores)")
	f.IntVar(&fl.CtxSize, "ctx-size", fl.CtxSize, "context window size in tokens")
	f.StringVar(&opts.configPath, "config", "", "config file (yaml/json/toml) supplying defaults")
	f.StringVar(&fl.LogLevel, "log-level", fl.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&fl.LogFormat, "log-format", fl.LogFormat, "log format: console or json")
	f.StringVar(&fl.MetricsFile, "metrics-file", "", "write Prometheus text metrics to this file on exit")

	return cmd, opts
}

// buildConfig assembles the invocation configuration: built-in/env defaults,
// then the config file, then explicitly set flags.
func buildConfig(cmd *cobra.Command, opts *cliOptions) (config.Config, error) {
	fl := opts.fl
	cfg := config.Default()
	if opts.configPath != "" {
		file, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		mergeFile(&cfg, file)
	}

	f := cmd.Flags()
	set := map[string]func(){
		"which":          func() { cfg.Which = fl.Which },
		"sample-len":     func() { cfg.SampleLen = fl.SampleLen },
		"cpu":            func() { cfg.UseCPU = fl.UseCPU },
		"prompt":         func() { cfg.Prompt = fl.Prompt },
		"temperature":    func() { cfg.Temperature = fl.Temperature },
		"top-p":          func() { cfg.TopP = fl.TopP },
		"top-k":          func() { cfg.TopK = fl.TopK },
		"seed":           func() { cfg.Seed = fl.Seed },
		"repeat-penalty": func() { cfg.RepeatPenalty = fl.RepeatPenalty },
		"repeat-last-n":  func() { cfg.RepeatLastN = fl.RepeatLastN },
		"model-file":     func() { cfg.ModelFile = fl.ModelFile },
		"models-dir":     func() { cfg.ModelsDir = fl.ModelsDir },
		"threads":        func() { cfg.Threads = fl.Threads },
		"ctx-size":       func() { cfg.CtxSize = fl.CtxSize },
		"log-level":      func() { cfg.LogLevel = fl.LogLevel },
		"log-format":     func() { cfg.LogFormat = fl.LogFormat },
		"metrics-file":   func() { cfg.MetricsFile = fl.MetricsFile },
	}
	for name, apply := range set {
		if f.Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile copies set (non-zero) file fields over the defaults.
func mergeFile(dst *config.Config, src config.Config) {
	if src.Which != "" {
		dst.Which = src.Which
	}
	if src.ModelFile != "" {
		dst.ModelFile = src.ModelFile
	}
	if src.ModelsDir != "" {
		dst.ModelsDir = src.ModelsDir
	}
	if src.SampleLen != 0 {
		dst.SampleLen = src.SampleLen
	}
	if src.Temperature != 0 {
		dst.Temperature = src.Temperature
	}
	if src.TopP != 0 {
		dst.TopP = src.TopP
	}
	if src.TopK != 0 {
		dst.TopK = src.TopK
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
	}
	if src.RepeatPenalty != 0 {
		dst.RepeatPenalty = src.RepeatPenalty
	}
	if src.RepeatLastN != 0 {
		dst.RepeatLastN = src.RepeatLastN
	}
	if src.UseCPU {
		dst.UseCPU = true
	}
	if src.Threads != 0 {
		dst.Threads = src.Threads
	}
	if src.CtxSize != 0 {
		dst.CtxSize = src.CtxSize
	}
	if src.Prompt != "" {
		dst.Prompt = src.Prompt
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.MetricsFile != "" {
		dst.MetricsFile = src.MetricsFile
	}
}

func runChat(cfg config.Config) error {
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	var (
		model catalog.Model
		err   error
	)
	if cfg.ModelFile != "" {
		model, err = catalog.ResolveFile(cfg.ModelFile)
	} else {
		model, err = catalog.Resolve(cfg.Which, cfg.ModelsDir)
	}
	if err != nil {
		return err
	}

	device := infer.PickDevice(cfg.UseCPU)
	threads := cfg.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	params := infer.ParamsFromConfig(cfg)
	log.Info().
		Str("device", device.String()).
		Bool("llama_built", infer.Built()).
		Stringer("sampling", infer.PolicyFor(cfg.Temperature, cfg.TopK, cfg.TopP)).
		Int("sample_len", cfg.SampleLen).
		Int("threads", threads).
		Msg("starting")

	adapter := infer.NewLlamaAdapter(infer.Options{
		CtxSize:   cfg.CtxSize,
		Threads:   threads,
		GPULayers: device.GPULayers(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := chat.New(adapter, model, params, log, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if cfg.Prompt != "" {
		err = c.Once(ctx, cfg.Prompt)
	} else {
		err = c.Loop(ctx)
	}
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted")
		err = nil
	}

	if cfg.MetricsFile != "" {
		if werr := metrics.WriteFile(cfg.MetricsFile); werr != nil {
			log.Warn().Err(werr).Str("path", cfg.MetricsFile).Msg("failed to write metrics file")
		}
	}
	return err
}

func main() {
	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
