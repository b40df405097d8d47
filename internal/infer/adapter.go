// Package infer abstracts the model runtime behind a small adapter surface.
// The real implementation delegates to go-llama.cpp (build tag 'llama');
// default builds get a stub that fails fast, keeping CI CGO-free.
package infer

import "context"

// Adapter prepares inference sessions for a model file.
type Adapter interface {
	// Start loads the model at modelPath and returns a session configured
	// with the given generation parameters.
	Start(modelPath string, params Params) (Session, error)
}

// Session owns one loaded model context. Generate may be called once per
// chat turn; implementations must return promptly when ctx is canceled.
type Session interface {
	// Generate streams tokens for the given prompt through onToken.
	// Returning an error from onToken stops generation.
	Generate(ctx context.Context, prompt string, onToken func(string) error) (Result, error)
	// Close releases the model and any native resources.
	Close() error
}

// Params captures generation parameters passed to the adapter.
type Params struct {
	Temperature   float32
	TopP          float32
	TopK          int
	MaxTokens     int
	Seed          int
	RepeatPenalty float32
	RepeatLastN   int
	Stop          []string
}

// Options configures how an adapter loads models.
type Options struct {
	CtxSize   int
	Threads   int
	GPULayers int
}

// Result summarizes a generation after streaming completes.
type Result struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage contains token accounting.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Built reports whether this binary carries the real llama runtime.
func Built() bool { return llamaBuilt }
