// Package metrics records per-run ingestion counters on a private Prometheus
// registry and optionally pushes them to a Pushgateway when a run ends.
package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "teamfit"

const (
	SourceNetwork = "network"
	SourceCache   = "cache"
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithPushGateway enables pushing the registry to url under job when Push is called.
func WithPushGateway(url, job string) Option {
	return func(r *Recorder) {
		r.pushURL = strings.TrimSpace(url)
		if job != "" {
			r.pushJob = job
		}
	}
}

type Recorder struct {
	pushURL   string
	pushJob   string
	registry  *prometheus.Registry

	pagesFetched   *prometheus.CounterVec
	rowsPersisted  *prometheus.CounterVec
	ingestDuration *prometheus.HistogramVec
	ingestFailures prometheus.Counter
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		pushJob:   "teamfit_ingest",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.pagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Category pages fetched, by source (network or cache).",
	}, []string{"source"})
	r.rowsPersisted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_persisted_total",
		Help:      "Rows written per table.",
	}, []string{"table"})
	r.ingestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_duration_seconds",
		Help:      "Wall time of one competition ingestion.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	}, []string{"league", "season"})
	r.ingestFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_failures_total",
		Help:      "Competition ingestions that aborted with an error.",
	})

	r.registry.MustRegister(r.pagesFetched, r.rowsPersisted, r.ingestDuration, r.ingestFailures)
	return r
}

func (r *Recorder) PageFetched(fromCache bool) {
	if r == nil {
		return
	}
	source := SourceNetwork
	if fromCache {
		source = SourceCache
	}
	r.pagesFetched.WithLabelValues(source).Inc()
}

func (r *Recorder) RowsPersisted(table string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.rowsPersisted.WithLabelValues(table).Add(float64(n))
}

func (r *Recorder) IngestFinished(league, season string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.ingestDuration.WithLabelValues(league, season).Observe(elapsed.Seconds())
	if err != nil {
		r.ingestFailures.Inc()
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Push sends the registry to the configured Pushgateway; it is a no-op when
// no gateway is configured.
func (r *Recorder) Push(ctx context.Context) error {
	if r == nil || r.pushURL == "" {
		return nil
	}
	if err := push.New(r.pushURL, r.pushJob).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", r.pushURL, err)
	}
	return nil
}
