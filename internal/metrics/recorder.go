package metrics

import "time"

// OutcomeLabel enumerates pass result categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for resolution and build metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. The
// NoopRecorder allows optional injection without nil checks at call sites.
type Recorder interface {
	ObserveResolveDuration(d time.Duration)
	ObserveBuildDuration(d time.Duration)
	AddFilesResolved(n int)
	AddCopiedBytes(n int64)
	IncPassOutcome(outcome OutcomeLabel)
	IncRebuild()
	SetWatchedPaths(n int)
	SetLiveReloadClients(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)   {}
func (NoopRecorder) AddFilesResolved(int)                 {}
func (NoopRecorder) AddCopiedBytes(int64)                 {}
func (NoopRecorder) IncPassOutcome(OutcomeLabel)          {}
func (NoopRecorder) IncRebuild()                          {}
func (NoopRecorder) SetWatchedPaths(int)                  {}
func (NoopRecorder) SetLiveReloadClients(int)             {}
