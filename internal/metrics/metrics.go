// Package metrics tracks generation counters for the chat pipeline.
// There is no exposition endpoint; --metrics-file dumps the default
// registry in Prometheus text format when the process exits.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mistralchat",
		Subsystem: "infer",
		Name:      "generations_total",
		Help:      "Total number of completed generations",
	})

	TokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mistralchat",
		Subsystem: "infer",
		Name:      "tokens_generated_total",
		Help:      "Total number of tokens generated",
	})

	GenerationDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Namespace: "mistralchat",
		Subsystem: "infer",
		Name:      "generation_duration_seconds",
		Help:      "Wall-clock duration of generations",
	})

	PromptLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mistralchat",
		Subsystem: "infer",
		Name:      "prompt_length_chars",
		Help:      "Distribution of prompt lengths in characters",
		Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
	})
)

// ObserveGeneration records one finished generation.
func ObserveGeneration(tokens int, d time.Duration) {
	GenerationsTotal.Inc()
	TokensTotal.Add(float64(tokens))
	GenerationDuration.Observe(d.Seconds())
}

// WriteFile dumps the default registry to path in Prometheus text format
// (the node-exporter textfile collector layout).
func WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
