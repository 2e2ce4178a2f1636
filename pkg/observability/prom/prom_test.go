package prom

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnGenerateStart(ctx, 2)
	h.OnLayerGenerated(ctx, 0, 5, 6, 3)
	h.OnLayerGenerated(ctx, 1, 4, 5, 1)
	h.OnGenerateComplete(ctx, 9, 14, 20*time.Millisecond, nil)
	h.OnGenerateComplete(ctx, 0, 0, time.Millisecond, errors.New("infeasible"))

	assert.Equal(t, 2.0, testutil.ToFloat64(h.layers))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.generations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.generations.WithLabelValues("error")))

	want := `
# HELP multilayer_generations_total Multilayer graphs generated, by result.
# TYPE multilayer_generations_total counter
multilayer_generations_total{result="error"} 1
multilayer_generations_total{result="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "multilayer_generations_total"))

	count, err := testutil.GatherAndCount(reg, "multilayer_layer_attempts")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRenderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnRenderStart(ctx, []string{"html", "json"})
	h.OnRenderComplete(ctx, []string{"html", "json"}, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.renders.WithLabelValues("html,json", "ok")))
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnRequest(ctx, "GET", "/")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.inFlight))

	h.OnResponse(ctx, "GET", "/", 200, 5*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(h.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.requests.WithLabelValues("GET", "/", "200")))
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
