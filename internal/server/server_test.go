package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multilayer/pkg/observability"
	"github.com/matzehuels/multilayer/pkg/observability/prom"
	"github.com/matzehuels/multilayer/pkg/pipeline"
)

func testOptions() pipeline.Options {
	return pipeline.Options{
		NumLayers:       2,
		MinNodes:        3,
		MaxNodes:        4,
		MinEdges:        2,
		MaxEdges:        4,
		InterlayerEdges: 1,
	}
}

func newTestServer(t *testing.T, reg *prometheus.Registry) *httptest.Server {
	t.Helper()
	var gatherer prometheus.Gatherer
	if reg != nil {
		gatherer = reg
	}
	srv := httptest.NewServer(New(pipeline.NewRunner(nil), testOptions(), gatherer).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestGraphRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html; charset=utf-8", "Plotly.newPlot"},
		{"/graph.json", "application/json", `"interlayer_edges"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get(RunIDHeader))
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestSeedQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	_, a := get(t, srv.URL+"/graph.json?seed=11")
	resp, b := get(t, srv.URL+"/graph.json?seed=11")
	assert.Equal(t, a, b)
	assert.Equal(t, "11", resp.Header.Get("X-Seed"))

	var doc struct {
		Seed uint64 `json:"seed"`
	}
	require.NoError(t, json.Unmarshal([]byte(a), &doc))
	assert.Equal(t, uint64(11), doc.Seed)

	resp, _ = get(t, srv.URL+"/graph.json?seed=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFreshGraphPerRequest(t *testing.T) {
	srv := newTestServer(t, nil)

	r1, _ := get(t, srv.URL+"/graph.json")
	r2, _ := get(t, srv.URL+"/graph.json")
	assert.NotEqual(t, r1.Header.Get(RunIDHeader), r2.Header.Get(RunIDHeader))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := prom.New(reg)
	observability.SetHTTPHooks(hooks)
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, reg)
	get(t, srv.URL+"/graph.json?seed=3")

	resp, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "multilayer_http_requests_total"))
	assert.True(t, strings.Contains(body, "multilayer_generations_total"))

	n, err := testutil.GatherAndCount(reg, "multilayer_http_requests_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestMetricsDisabledWithoutGatherer(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInfeasibleOptions(t *testing.T) {
	opts := testOptions()
	opts.MinNodes, opts.MaxNodes = 3, 3
	opts.MinEdges, opts.MaxEdges = 4, 4

	srv := httptest.NewServer(New(pipeline.NewRunner(nil), opts, nil).Handler())
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(pipeline.NewRunner(nil), testOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
