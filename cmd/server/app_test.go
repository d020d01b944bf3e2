package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/phrazzld/directions-api/internal/api/shared"
	"github.com/phrazzld/directions-api/internal/config"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "debug",
			RequestTimeout: 5 * time.Second,
			Compress:       true,
		},
		Routing: config.RoutingConfig{
			MaximumWaypoints:          50,
			MaximumDistance:           6_000_000,
			MaximumAvoidPolygonArea:   200,
			MaximumAvoidPolygonExtent: 20,
			Attribution:               "© OpenStreetMap contributors",
			EngineVersion:             "straight-line",
		},
		Engine: config.EngineConfig{
			Timeout:       time.Second,
			AverageSpeeds: map[string]float64{"driving": 100},
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()

	l, _ := logger.NewTestLogger(t)
	app, err := newApplication(cfg, l)
	require.NoError(t, err)
	return app
}

func TestNewApplication_RequiresDependencies(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger(t)
	_, err := newApplication(nil, l)
	assert.Error(t, err)
	_, err = newApplication(testConfig(), nil)
	assert.Error(t, err)
}

func TestRouter_Directions(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server.Compress = false
	router := newTestApp(t, cfg).setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/v2/directions/driving-car",
		strings.NewReader(`{"coordinates":[[8.680916,49.410973],[8.687782,49.424597]]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(shared.TraceIDHeader))

	var body struct {
		Routes []struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Routes, 1)
	// configured driving speed of 100 km/h
	summary := body.Routes[0].Summary
	assert.InDelta(t, summary.Distance/(100/3.6), summary.Duration, 0.2)
}

func TestRouter_Compression(t *testing.T) {
	t.Parallel()

	router := newTestApp(t, testConfig()).setupRouter()

	// long legs interpolate into enough vertices to pass the gzip threshold
	coords := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		coords = append(coords, fmt.Sprintf("[%.1f,%.1f]", 8.0+0.2*float64(i), 49.0+0.1*float64(i)))
	}
	req := httptest.NewRequest(http.MethodPost, "/v2/directions/driving-car",
		strings.NewReader(`{"coordinates":[`+strings.Join(coords, ",")+`],"geometry_format":"plain"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	b, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, json.Valid(b))
	assert.Contains(t, string(b), `"geometry_format":"plain"`)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := newTestApp(t, testConfig()).setupRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestApp(t, testConfig()).setupRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/matrix", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, testConfig())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
