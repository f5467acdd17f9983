// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/causeview/pkg/observability"
)

// Hooks records driver, cache and HTTP events as Prometheus metrics.
type Hooks struct {
	Renders        *prometheus.CounterVec
	Fallbacks      prometheus.Counter
	LayoutDuration *prometheus.HistogramVec
	VisibleNodes   prometheus.Gauge
	CacheEvents    *prometheus.CounterVec
	Requests       *prometheus.CounterVec
}

// New registers the causeview metrics on reg and returns hooks that update
// them. Registering twice on the same registry panics.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "causeview_renders_total",
			Help: "Frames rendered, by outcome",
		}, []string{"outcome"}),
		Fallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "causeview_layout_fallbacks_total",
			Help: "Layouts that fell back to the spring strategy",
		}),
		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "causeview_layout_duration_ms",
			Help:    "Layout wall time in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"strategy"}),
		VisibleNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "causeview_visible_nodes",
			Help: "Nodes visible at the most recently filtered step",
		}),
		CacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "causeview_cache_events_total",
			Help: "Cache hits, misses and writes",
		}, []string{"event", "key_type"}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "causeview_http_requests_total",
			Help: "HTTP requests served, by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// Register installs h as the global driver, cache and HTTP hooks.
func (h *Hooks) Register() {
	observability.SetDriverHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *Hooks) OnFilter(_ context.Context, _ int, nodeCount, _ int) {
	h.VisibleNodes.Set(float64(nodeCount))
}

func (h *Hooks) OnLayoutComplete(_ context.Context, strategy string, degraded bool, d time.Duration, err error) {
	if err != nil {
		return
	}
	if degraded {
		h.Fallbacks.Inc()
	}
	h.LayoutDuration.WithLabelValues(strategy).Observe(float64(d.Microseconds()) / 1000)
}

func (h *Hooks) OnRenderComplete(_ context.Context, _ int, _ time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	h.Renders.WithLabelValues(outcome).Inc()
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheEvents.WithLabelValues("hit", keyType).Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheEvents.WithLabelValues("miss", keyType).Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.CacheEvents.WithLabelValues("set", keyType).Inc()
}

func (h *Hooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

var (
	_ observability.DriverHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
	_ observability.HTTPHooks   = (*Hooks)(nil)
)
