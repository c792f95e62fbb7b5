package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	registry          *prom.Registry
	resolveDuration   prom.Histogram
	buildDuration     prom.Histogram
	filesResolved     prom.Counter
	copiedBytes       prom.Counter
	passOutcome       *prom.CounterVec
	rebuilds          prom.Counter
	watchedPaths      prom.Gauge
	liveReloadClients prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.resolveDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "extrafiles",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of source entry resolution per pass",
			Buckets:   prom.DefBuckets,
		})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "extrafiles",
			Name:      "build_duration_seconds",
			Help:      "Total build pass duration",
			Buckets:   prom.DefBuckets,
		})
		pr.filesResolved = prom.NewCounter(prom.CounterOpts{
			Namespace: "extrafiles",
			Name:      "files_resolved_total",
			Help:      "Number of resolved source files across passes",
		})
		pr.copiedBytes = prom.NewCounter(prom.CounterOpts{
			Namespace: "extrafiles",
			Name:      "copied_bytes_total",
			Help:      "Bytes physically copied into the output directory",
		})
		pr.passOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "extrafiles",
			Name:      "pass_outcomes_total",
			Help:      "Build/serve pass outcomes by final status",
		}, []string{"outcome"})
		pr.rebuilds = prom.NewCounter(prom.CounterOpts{
			Namespace: "extrafiles",
			Name:      "rebuilds_total",
			Help:      "Incremental rebuilds triggered by watcher events",
		})
		pr.watchedPaths = prom.NewGauge(prom.GaugeOpts{
			Namespace: "extrafiles",
			Name:      "watched_paths",
			Help:      "Distinct absolute source paths registered with the watcher",
		})
		pr.liveReloadClients = prom.NewGauge(prom.GaugeOpts{
			Namespace: "extrafiles",
			Name:      "livereload_clients",
			Help:      "Connected live reload SSE clients",
		})
		reg.MustRegister(pr.resolveDuration, pr.buildDuration, pr.filesResolved,
			pr.copiedBytes, pr.passOutcome, pr.rebuilds, pr.watchedPaths, pr.liveReloadClients)
	})
	return pr
}

// Handler returns an HTTP handler serving the recorder's registry.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{})
}

func (pr *PrometheusRecorder) ObserveResolveDuration(d time.Duration) {
	pr.resolveDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	pr.buildDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) AddFilesResolved(n int) {
	pr.filesResolved.Add(float64(n))
}

func (pr *PrometheusRecorder) AddCopiedBytes(n int64) {
	pr.copiedBytes.Add(float64(n))
}

func (pr *PrometheusRecorder) IncPassOutcome(outcome OutcomeLabel) {
	pr.passOutcome.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) IncRebuild() {
	pr.rebuilds.Inc()
}

func (pr *PrometheusRecorder) SetWatchedPaths(n int) {
	pr.watchedPaths.Set(float64(n))
}

func (pr *PrometheusRecorder) SetLiveReloadClients(n int) {
	pr.liveReloadClients.Set(float64(n))
}
