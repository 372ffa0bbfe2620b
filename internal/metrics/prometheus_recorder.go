package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generateDuration *prom.HistogramVec
	generateOutcome  *prom.CounterVec
	unresolvedTotal  prom.Counter
	audioCopiedTotal prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generateDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pitchgen",
			Name:      "generate_duration_seconds",
			Help:      "Duration of page generation runs",
			Buckets:   prom.DefBuckets,
		}, []string{"client"}),
		generateOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pitchgen",
			Name:      "generate_outcomes_total",
			Help:      "Generation outcomes by final status",
		}, []string{"outcome"}),
		unresolvedTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "pitchgen",
			Name:      "unresolved_placeholders_total",
			Help:      "Total unresolved placeholder tokens reported",
		}),
		audioCopiedTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "pitchgen",
			Name:      "audio_files_copied_total",
			Help:      "Total audio files mirrored into client output",
		}),
	}
	reg.MustRegister(pr.generateDuration, pr.generateOutcome, pr.unresolvedTotal, pr.audioCopiedTotal)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerateDuration(client string, d time.Duration) {
	if p == nil {
		return
	}
	p.generateDuration.WithLabelValues(client).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerateOutcome(outcome string) {
	if p == nil {
		return
	}
	p.generateOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) AddUnresolvedTokens(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.unresolvedTotal.Add(float64(n))
}

func (p *PrometheusRecorder) AddAudioFilesCopied(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.audioCopiedTotal.Add(float64(n))
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
