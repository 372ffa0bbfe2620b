// Package metrics defines observability hooks for page generation.
package metrics

import "time"

// Outcome labels for generation counters.
const (
	OutcomeSuccess = "success"
	OutcomeWarning = "warning" // generated, but with unresolved placeholders
	OutcomeFailed  = "failed"
)

// Recorder defines observability hooks for generation runs. Implementations
// may forward to Prometheus; the NoopRecorder is the default when metrics
// are not configured.
type Recorder interface {
	ObserveGenerateDuration(client string, d time.Duration)
	IncGenerateOutcome(outcome string)
	AddUnresolvedTokens(n int)
	AddAudioFilesCopied(n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerateDuration(string, time.Duration) {}
func (NoopRecorder) IncGenerateOutcome(string)                    {}
func (NoopRecorder) AddUnresolvedTokens(int)                      {}
func (NoopRecorder) AddAudioFilesCopied(int)                      {}
