package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "heatmap"

// Prometheus implements all hook interfaces on a private registry, so several
// instances can coexist in tests without "already registered" panics.
type Prometheus struct {
	registry *prometheus.Registry

	StageDuration *prometheus.HistogramVec // labels: stage={load,build,render}
	StageErrors   *prometheus.CounterVec   // labels: stage
	Records       prometheus.Gauge
	Cells         prometheus.Gauge

	CacheLookups *prometheus.CounterVec // labels: key_type, result={hit,miss}
	CacheWrites  *prometheus.CounterVec // labels: key_type
	CacheBytes   *prometheus.CounterVec // labels: key_type

	HTTPRequests *prometheus.CounterVec   // labels: host, outcome={ok,status,error}
	HTTPDuration *prometheus.HistogramVec // labels: host
}

// NewPrometheus creates and registers the heat-map metrics.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the most recently loaded dataset.",
		}),
		Cells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chart_cells",
			Help:      "Cells in the most recently built chart.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by key type and result.",
		}, []string{"key_type", "result"}),
		CacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Cache writes by key type.",
		}, []string{"key_type"}),
		CacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dataset fetches by host and outcome.",
		}, []string{"host", "outcome"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Dataset fetch duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"host"}),
	}

	p.registry.MustRegister(
		p.StageDuration,
		p.StageErrors,
		p.Records,
		p.Cells,
		p.CacheLookups,
		p.CacheWrites,
		p.CacheBytes,
		p.HTTPRequests,
		p.HTTPDuration,
	)
	return p
}

// Registry exposes the underlying registry for gathering.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// WriteTextfile writes every metric in the text exposition format, suitable
// for the node_exporter textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

func (p *Prometheus) observeStage(stage string, d time.Duration, err error) {
	p.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		p.StageErrors.WithLabelValues(stage).Inc()
	}
}

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, _ string, records int, d time.Duration, err error) {
	p.observeStage("load", d, err)
	if err == nil {
		p.Records.Set(float64(records))
	}
}

func (p *Prometheus) OnBuildStart(context.Context, int) {}

func (p *Prometheus) OnBuildComplete(_ context.Context, cells int, d time.Duration, err error) {
	p.observeStage("build", d, err)
	if err == nil {
		p.Cells.Set(float64(cells))
	}
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.observeStage("render", d, err)
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.CacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheWrites.WithLabelValues(keyType).Inc()
	p.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	outcome := "ok"
	if status != 200 {
		outcome = "status"
	}
	p.HTTPRequests.WithLabelValues(host, outcome).Inc()
	p.HTTPDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, _, host, _ string, _ error) {
	p.HTTPRequests.WithLabelValues(host, "error").Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
