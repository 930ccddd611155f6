package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultPort = 2112

// MetricsURL is the path the prometheus handler is served on.
const MetricsURL = "/metrics"

var (
	ErrWrongPortSpecified = errors.New("port range allowed is from 0 to 65535")
	ErrListenFailed       = errors.New("telemetry server failed to listen")
)

// Config is the configuration of the telemetry endpoint.
type Config struct {
	Port int `yaml:"port"` // Port of the metrics endpoint, 2112 when set to 0.
}

// Measurements collects measurements for prometheus.
// Measurements is safe for concurrent use.
type Measurements struct {
	mux        sync.RWMutex
	registry   *prometheus.Registry
	factory    promauto.Factory
	histograms map[string]prometheus.Observer
	gauge      map[string]prometheus.Gauge
	counters   map[string]*prometheus.CounterVec
}

// New creates Measurements backed by its own registry.
func New() *Measurements {
	reg := prometheus.NewRegistry()
	return &Measurements{
		registry:   reg,
		factory:    promauto.With(reg),
		histograms: make(map[string]prometheus.Observer),
		gauge:      make(map[string]prometheus.Gauge),
		counters:   make(map[string]*prometheus.CounterVec),
	}
}

// Handler returns the http handler exposing the measurements.
func (m *Measurements) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// CreateObservableHistogram creates observable histogram, an existing one is kept.
func (m *Measurements) CreateObservableHistogram(name, description string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.histograms[name]; ok {
		return
	}
	m.histograms[name] = m.factory.NewHistogram(prometheus.HistogramOpts{
		Name: name,
		Help: description,
	})
}

// RecordHistogramTime records histogram time in microseconds if entity with given name exists.
func (m *Measurements) RecordHistogramTime(name string, t time.Duration) bool {
	return m.RecordHistogramValue(name, float64(t.Microseconds()))
}

// RecordHistogramValue records histogram value if entity with given name exists.
func (m *Measurements) RecordHistogramValue(name string, f float64) bool {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if v, ok := m.histograms[name]; ok {
		v.Observe(f)
		return true
	}
	return false
}

// CreateObservableGauge creates observable gauge, an existing one is kept.
func (m *Measurements) CreateObservableGauge(name, description string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.gauge[name]; ok {
		return
	}
	m.gauge[name] = m.factory.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: description,
	})
}

// IncrementGauge increments gauge if entity with given name exists.
func (m *Measurements) IncrementGauge(name string) bool {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if v, ok := m.gauge[name]; ok {
		v.Inc()
		return true
	}
	return false
}

// DecrementGauge decrements gauge if entity with given name exists.
func (m *Measurements) DecrementGauge(name string) bool {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if v, ok := m.gauge[name]; ok {
		v.Dec()
		return true
	}
	return false
}

// CreateCounter creates a counter partitioned by the label, an existing one is kept.
func (m *Measurements) CreateCounter(name, description, label string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.counters[name]; ok {
		return
	}
	m.counters[name] = m.factory.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: description,
	}, []string{label})
}

// IncrementCounter increments the counter for the label value if entity with given name exists.
func (m *Measurements) IncrementCounter(name, value string) bool {
	m.mux.RLock()
	defer m.mux.RUnlock()
	if v, ok := m.counters[name]; ok {
		v.WithLabelValues(value).Inc()
		return true
	}
	return false
}

// Run starts the server with prometheus telemetry endpoint.
// It blocks until the context is canceled or the server fails, a failure to listen is returned.
// Default port of 2112 is used if port value is set to 0.
func Run(ctx context.Context, cfg Config, m *Measurements) error {
	port := cfg.Port
	if port > 65535 || port < 0 {
		return errors.Join(ErrWrongPortSpecified, fmt.Errorf("received %d", port))
	}
	if port == 0 {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.Handle(MetricsURL, m.Handler())
	srv := http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	failed := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- errors.Join(ErrListenFailed, err)
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	return srv.Shutdown(shutdownCtx)
}
