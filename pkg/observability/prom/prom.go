// Package prom implements the observability hooks with Prometheus collectors.
package prom

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/multilayer/pkg/observability"
)

const namespace = "multilayer"

const (
	labelResult  = "result"
	labelFormats = "formats"
	labelMethod  = "method"
	labelRoute   = "route"
	labelStatus  = "status"
)

// Hooks records generation, render and HTTP events as Prometheus metrics.
type Hooks struct {
	generations      *prometheus.CounterVec
	generateDuration prometheus.Histogram
	layers           prometheus.Counter
	layerAttempts    prometheus.Histogram
	layerNodes       prometheus.Histogram
	graphEdges       prometheus.Histogram
	renders          *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	inFlight         prometheus.Gauge
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Multilayer graphs generated, by result.",
		}, []string{labelResult}),
		generateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Time spent assembling a multilayer graph.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		layers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layers_total",
			Help:      "Layers accepted by the layer generator.",
		}),
		layerAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layer_attempts",
			Help:      "Rejection-sampling draws needed per accepted layer.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		layerNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layer_nodes",
			Help:      "Node count of accepted layers.",
			Buckets:   prometheus.LinearBuckets(2, 4, 10),
		}),
		graphEdges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Reveal-order edge count of generated multilayer graphs.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render passes, by requested formats and result.",
		}, []string{labelFormats, labelResult}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{labelFormats}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Viewer requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Viewer requests, by method, route and status.",
		}, []string{labelMethod, labelRoute, labelStatus}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Viewer request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{labelMethod, labelRoute}),
	}
	reg.MustRegister(
		h.generations,
		h.generateDuration,
		h.layers,
		h.layerAttempts,
		h.layerNodes,
		h.graphEdges,
		h.renders,
		h.renderDuration,
		h.inFlight,
		h.requests,
		h.requestDuration,
	)
	return h
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *Hooks) OnGenerateStart(context.Context, int) {}

func (h *Hooks) OnLayerGenerated(_ context.Context, _, nodes, _, attempts int) {
	h.layers.Inc()
	h.layerAttempts.Observe(float64(attempts))
	h.layerNodes.Observe(float64(nodes))
}

func (h *Hooks) OnGenerateComplete(_ context.Context, _, edges int, d time.Duration, err error) {
	h.generations.WithLabelValues(result(err)).Inc()
	if err != nil {
		return
	}
	h.generateDuration.Observe(d.Seconds())
	h.graphEdges.Observe(float64(edges))
}

func (h *Hooks) OnRenderStart(context.Context, []string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	f := strings.Join(formats, ",")
	h.renders.WithLabelValues(f, result(err)).Inc()
	h.renderDuration.WithLabelValues(f).Observe(d.Seconds())
}

func (h *Hooks) OnRequest(context.Context, string, string) {
	h.inFlight.Inc()
}

func (h *Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.inFlight.Dec()
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Hooks)(nil)
	_ observability.HTTPHooks     = (*Hooks)(nil)
)
