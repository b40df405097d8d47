package infer

import (
	"fmt"

	"mistralchat/internal/config"
)

// Sampling names the token-selection strategy derived from the invocation.
type Sampling int

const (
	// SamplingGreedy always takes the highest-probability token.
	SamplingGreedy Sampling = iota
	// SamplingAll samples from the full temperature-scaled distribution.
	SamplingAll
	// SamplingTopK restricts to the K most likely tokens.
	SamplingTopK
	// SamplingTopP restricts to the nucleus with cumulative probability P.
	SamplingTopP
	// SamplingTopKTopP applies the top-K cut first, then the nucleus cut.
	SamplingTopKTopP
)

func (s Sampling) String() string {
	switch s {
	case SamplingGreedy:
		return "greedy"
	case SamplingAll:
		return "all"
	case SamplingTopK:
		return "top-k"
	case SamplingTopP:
		return "top-p"
	case SamplingTopKTopP:
		return "top-k+top-p"
	}
	return fmt.Sprintf("sampling(%d)", int(s))
}

// PolicyFor selects the sampling strategy. A temperature of zero (or below)
// means greedy decoding no matter what top-k/top-p say; otherwise whichever
// truncation knobs are set narrow the candidate set.
func PolicyFor(temperature float64, topK int, topP float64) Sampling {
	if temperature <= 0 {
		return SamplingGreedy
	}
	switch {
	case topK > 0 && topP > 0:
		return SamplingTopKTopP
	case topK > 0:
		return SamplingTopK
	case topP > 0:
		return SamplingTopP
	}
	return SamplingAll
}

// ParamsFromConfig maps a validated invocation onto adapter parameters,
// normalizing the sampling knobs so the runtime sees one coherent policy:
// greedy zeroes temperature and pins top-k to 1; a disabled nucleus cut is
// expressed as top-p = 1.
func ParamsFromConfig(cfg config.Config) Params {
	p := Params{
		MaxTokens:     cfg.SampleLen,
		Seed:          cfg.Seed,
		RepeatPenalty: float32(cfg.RepeatPenalty),
		RepeatLastN:   cfg.RepeatLastN,
	}
	switch PolicyFor(cfg.Temperature, cfg.TopK, cfg.TopP) {
	case SamplingGreedy:
		p.Temperature = 0
		p.TopK = 1
		p.TopP = 1
	case SamplingAll:
		p.Temperature = float32(cfg.Temperature)
		p.TopK = 0
		p.TopP = 1
	case SamplingTopK:
		p.Temperature = float32(cfg.Temperature)
		p.TopK = cfg.TopK
		p.TopP = 1
	case SamplingTopP:
		p.Temperature = float32(cfg.Temperature)
		p.TopK = 0
		p.TopP = float32(cfg.TopP)
	case SamplingTopKTopP:
		p.Temperature = float32(cfg.Temperature)
		p.TopK = cfg.TopK
		p.TopP = float32(cfg.TopP)
	}
	return p
}
