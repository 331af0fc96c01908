package casdoor

import (
	"errors"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names recorded by the client.
const (
	MetricRequestsTotal   = "casdoor_client_requests_total"
	MetricRequestDuration = "casdoor_client_request_duration_seconds"
)

// Metrics is a generic metrics interface for the client.
type Metrics interface {
	IncCounter(name string, tags map[string]string)
	ObserveHistogram(name string, value float64, tags map[string]string)
}

// NoopMetrics is a default metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) IncCounter(string, map[string]string)                {}
func (NoopMetrics) ObserveHistogram(string, float64, map[string]string) {}

// PrometheusMetrics implements the Metrics interface using Prometheus.
// Vectors are created and registered the first time a name is seen; the
// label names are taken from that first call's tags. Several instances may
// share one registerer: they then record into the same vectors. Samples whose
// labels do not match the registered vector are dropped.
type PrometheusMetrics struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusMetrics returns a Metrics implementation registering its
// collectors with reg, or with prometheus.DefaultRegisterer when reg is nil.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusMetrics{
		registerer: reg,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func (m *PrometheusMetrics) IncCounter(name string, tags map[string]string) {
	m.mu.Lock()
	vec, ok := m.counters[name]
	if !ok {
		vec, ok = register(m.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: name + " counter",
		}, keys(tags)))
		if ok {
			m.counters[name] = vec
		}
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	if c, err := vec.GetMetricWith(tags); err == nil {
		c.Inc()
	}
}

func (m *PrometheusMetrics) ObserveHistogram(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	vec, ok := m.histograms[name]
	if !ok {
		vec, ok = register(m.registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    name + " histogram",
			Buckets: prometheus.DefBuckets,
		}, keys(tags)))
		if ok {
			m.histograms[name] = vec
		}
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	if h, err := vec.GetMetricWith(tags); err == nil {
		h.Observe(value)
	}
}

// register registers vec with reg. When an equal collector is already
// registered, for instance by another client sharing reg, that collector is
// returned instead. Any other registration error drops the metric.
func register[V prometheus.Collector](reg prometheus.Registerer, vec V) (V, bool) {
	err := reg.Register(vec)
	if err == nil {
		return vec, true
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(V); ok {
			return existing, true
		}
	}

	var zero V
	return zero, false
}

func keys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
