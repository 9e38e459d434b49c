package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kooroshkz/CrashScope/internal/config"
	"github.com/kooroshkz/CrashScope/internal/layer"
	"github.com/kooroshkz/CrashScope/internal/pipeline"
	"github.com/kooroshkz/CrashScope/internal/report"
)

type fakePipeline struct {
	snap  pipeline.Snapshot
	ready error
}

func (f *fakePipeline) Snapshot() pipeline.Snapshot            { return f.snap }
func (f *fakePipeline) CheckReadiness(_ context.Context) error { return f.ready }

func testServer(t *testing.T, pipe PipelineView) *Server {
	t.Helper()
	assets, err := LoadAssets()
	require.NoError(t, err)

	mapCfg := config.MapConfig{
		Title:   "Test Map",
		TileURL: "https://tiles.example/{z}/{x}/{y}.png",
		Zoom:    8,
		MaxZoom: 19,
	}
	return NewServer(":0", pipe, mapCfg, assets, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(srv *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if header != nil {
		req.Header = header
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_Index(t *testing.T) {
	srv := testServer(t, &fakePipeline{snap: pipeline.Snapshot{State: pipeline.StateIdle}})

	rec := doRequest(srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "leaflet")
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestServer_Index_NotModified(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	first := doRequest(srv, http.MethodGet, "/", nil)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	header := http.Header{}
	header.Set("If-None-Match", etag)
	second := doRequest(srv, http.MethodGet, "/", header)
	assert.Equal(t, http.StatusNotModified, second.Code)
}

func TestServer_Index_UnknownPath(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	rec := doRequest(srv, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_APIMap_Rendered(t *testing.T) {
	group := layer.Aggregate([]layer.Marker{
		{Point: orb.Point{4.89, 52.37}, Popup: "Outcome: UMS"},
	})
	bounds := layer.FitBounds(group.Markers)
	srv := testServer(t, &fakePipeline{snap: pipeline.Snapshot{
		State:  pipeline.StateRendered,
		Layer:  &group,
		Bounds: bounds,
	}})

	rec := doRequest(srv, http.MethodGet, "/api/map", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp mapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rendered", resp.State)
	assert.Equal(t, "Test Map", resp.Map.Title)
	require.NotNil(t, resp.Layer)
	require.Len(t, resp.Layer.Markers, 1)
	assert.Equal(t, "Outcome: UMS", resp.Layer.Markers[0].Popup)
	require.NotNil(t, resp.Bounds)
	assert.Nil(t, resp.Notice)
}

func TestServer_APIMap_Failed(t *testing.T) {
	srv := testServer(t, &fakePipeline{snap: pipeline.Snapshot{
		State:  pipeline.StateFailed,
		Notice: &report.Notice{Title: "Failed to load accident data", Message: "dataset request failed: status 404"},
	}})

	rec := doRequest(srv, http.MethodGet, "/api/map", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp mapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.State)
	require.NotNil(t, resp.Notice)
	assert.Contains(t, resp.Notice.Message, "404")
	assert.Nil(t, resp.Layer)
	assert.Nil(t, resp.Bounds)
}

func TestServer_Health(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	rec := doRequest(srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServer_Readiness(t *testing.T) {
	t.Run("not ready while loading", func(t *testing.T) {
		srv := testServer(t, &fakePipeline{ready: errors.New("still loading")})

		rec := doRequest(srv, http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("ready after terminal state", func(t *testing.T) {
		srv := testServer(t, &fakePipeline{})

		rec := doRequest(srv, http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLoadAssets_MinifiesPage(t *testing.T) {
	assets, err := LoadAssets()
	require.NoError(t, err)

	page := string(assets.IndexHTML)
	assert.Contains(t, page, "<style>")
	assert.Contains(t, page, "markercluster")
	// Template placeholders must be gone.
	assert.NotContains(t, page, "{{")
}
