// Package metrics exposes observability hooks for slice operations.
package metrics

import "time"

// Outcome is how a dispatched operation ended.
type Outcome string

const (
	OutcomeFulfilled Outcome = "fulfilled"
	OutcomeRejected  Outcome = "rejected"
	OutcomeCanceled  Outcome = "canceled"
	OutcomeStale     Outcome = "stale"
)

// Recorder receives slice operation events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveOperation(slice, op string, outcome Outcome, d time.Duration)
	SetInflight(slice string, n int)
}

// NoopRecorder is the default when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperation(string, string, Outcome, time.Duration) {}
func (NoopRecorder) SetInflight(string, int)                                {}
