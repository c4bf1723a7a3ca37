package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups every collector the service exports on /metrics.
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPLatencySec *prometheus.HistogramVec

	OrdenesLanzadas prometheus.Counter
	RecetasCache    *prometheus.CounterVec // result=hit|miss|error
	Jobs            *prometheus.CounterVec // type, result=ok|error
	AlertasStock    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "abba_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "abba_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	lanzadas := prometheus.NewCounter(prometheus.CounterOpts{Name: "abba_ordenes_produccion_lanzadas_total"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "abba_recetas_cache_total"}, []string{"result"})
	jobs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "abba_jobs_total"}, []string{"type", "result"})
	alertas := prometheus.NewGauge(prometheus.GaugeOpts{Name: "abba_alertas_stock_bajo"})

	r.MustRegister(
		httpRequests, httpLatency, lanzadas, cache, jobs, alertas,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:             r,
		HTTPRequests:    httpRequests,
		HTTPLatencySec:  httpLatency,
		OrdenesLanzadas: lanzadas,
		RecetasCache:    cache,
		Jobs:            jobs,
		AlertasStock:    alertas,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) OrdenLanzada() {
	if r == nil {
		return
	}
	r.OrdenesLanzadas.Inc()
}

func (r *Registry) Cache(result string) {
	if r == nil {
		return
	}
	r.RecetasCache.WithLabelValues(result).Inc()
}

func (r *Registry) Job(jobType string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.Jobs.WithLabelValues(jobType, result).Inc()
}

func (r *Registry) Alertas(n int) {
	if r == nil {
		return
	}
	r.AlertasStock.Set(float64(n))
}
