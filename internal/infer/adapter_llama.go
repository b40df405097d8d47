//go:build llama

package infer

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaAdapter holds load-time options shared by every session.
type llamaAdapter struct {
	opts Options
}

// NewLlamaAdapter returns the go-llama.cpp backed adapter.
func NewLlamaAdapter(opts Options) Adapter {
	return &llamaAdapter{opts: opts}
}

// llamaSession owns the loaded model.
type llamaSession struct {
	model      *llama.LLama
	threads    int
	baseParams Params
}

func (a *llamaAdapter) Start(modelPath string, params Params) (Session, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, ErrInvalidArgument("model path is empty")
	}
	if params.MaxTokens <= 0 {
		return nil, ErrInvalidArgument("max tokens must be positive")
	}
	mo := []llama.ModelOption{
		llama.SetContext(a.opts.CtxSize),
		llama.SetGPULayers(a.opts.GPULayers),
	}
	m, err := llama.New(modelPath, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: a.opts.Threads, baseParams: params}, nil
}

func (s *llamaSession) Generate(ctx context.Context, prompt string, onToken func(string) error) (Result, error) {
	if s.model == nil {
		return Result{}, errors.New("llama model not initialized")
	}

	generated := 0
	// Bridge token streaming to onToken and respect cancellation.
	s.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if err := onToken(tok); err != nil {
			return false
		}
		generated++
		return true
	})

	po := predictOptions(s.baseParams, s.threads)
	text, err := s.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}

	reason := "stop"
	if s.baseParams.MaxTokens > 0 && generated >= s.baseParams.MaxTokens {
		reason = "length"
	}
	return Result{
		Content:      text,
		Usage:        Usage{CompletionTokens: generated, TotalTokens: generated},
		FinishReason: reason,
	}, nil
}

func (s *llamaSession) Close() error {
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

// predictOptions converts adapter params into go-llama.cpp options.
func predictOptions(params Params, threads int) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetTokens(maxi(1, params.MaxTokens)),
		llama.SetThreads(maxi(1, threads)),
		llama.SetTemperature(params.Temperature),
		llama.SetTopK(params.TopK),
		llama.SetTopP(params.TopP),
	}
	if params.RepeatPenalty > 0 {
		po = append(po, llama.SetPenalty(params.RepeatPenalty))
	}
	if params.RepeatLastN > 0 {
		po = append(po, llama.SetRepeat(params.RepeatLastN))
	}
	if params.Seed != 0 {
		po = append(po, llama.SetSeed(params.Seed))
	}
	if len(params.Stop) > 0 {
		po = append(po, llama.SetStopWords(params.Stop...))
	}
	return po
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
