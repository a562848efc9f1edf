package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ChatPipelineMetrics records timing and fallback behavior of the assistant
// pipeline stages.
type ChatPipelineMetrics struct {
	duration *prometheus.HistogramVec
	fallback *prometheus.CounterVec
	selected *prometheus.CounterVec
}

// NewChatPipelineMetrics registers the chat pipeline metrics on the provided registerer.
func NewChatPipelineMetrics(reg prometheus.Registerer) *ChatPipelineMetrics {
	if reg == nil {
		return &ChatPipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chat_stage_duration_seconds",
		Help:    "Duration of chat pipeline stages in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	fallback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_stage_fallback_total",
		Help: "Chat pipeline stage executions that used their fallback value.",
	}, []string{"stage"})
	selected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_product_selection_total",
		Help: "Chat replies by whether a product was recommended.",
	}, []string{"outcome"})
	reg.MustRegister(duration, fallback, selected)
	return &ChatPipelineMetrics{
		duration: duration,
		fallback: fallback,
		selected: selected,
	}
}

// ObserveStage records the duration for the named stage.
func (c *ChatPipelineMetrics) ObserveStage(stage string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// IncFallback increments the fallback counter for the named stage.
func (c *ChatPipelineMetrics) IncFallback(stage string) {
	if c == nil || c.fallback == nil {
		return
	}
	c.fallback.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncSelection tallies a reply outcome ("product" or "none").
func (c *ChatPipelineMetrics) IncSelection(outcome string) {
	if c == nil || c.selected == nil {
		return
	}
	c.selected.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
