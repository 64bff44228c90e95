// Package metrics expone colectores Prometheus para el cliente del backend y la caché de inventario.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/api"
)

const namespace = "bakery_erp"

var (
	_ api.Observer       = (*Collector)(nil)
	_ inventory.Recorder = (*Collector)(nil)
)

// Collector agrupa las métricas de la aplicación.
type Collector struct {
	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	cacheEvents *prometheus.CounterVec
	fetchErrors *prometheus.CounterVec
}

// New crea los colectores y los registra en reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Llamadas al backend por método, ruta y status (0 = sin respuesta).",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Latencia de las llamadas al backend.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory_cache",
			Name:      "lookups_total",
			Help:      "Consultas a la caché de inventario por colección y resultado (hit|miss).",
		}, []string{"collection", "result"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory_cache",
			Name:      "fetch_errors_total",
			Help:      "Fallos al traer una colección del backend.",
		}, []string{"collection"}),
	}
	for _, col := range []prometheus.Collector{c.apiRequests, c.apiLatency, c.cacheEvents, c.fetchErrors} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRequest implementa api.Observer.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.apiLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CacheHit implementa inventory.Recorder.
func (c *Collector) CacheHit(collection string) {
	c.cacheEvents.WithLabelValues(collection, "hit").Inc()
}

// CacheMiss implementa inventory.Recorder.
func (c *Collector) CacheMiss(collection string) {
	c.cacheEvents.WithLabelValues(collection, "miss").Inc()
}

// FetchError implementa inventory.Recorder.
func (c *Collector) FetchError(collection string) {
	c.fetchErrors.WithLabelValues(collection).Inc()
}
