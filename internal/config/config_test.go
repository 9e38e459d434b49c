package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultDatasetURL, cfg.DatasetURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://tile.openstreetmap.org/{z}/{x}/{y}.png", cfg.Map.TileURL)
	assert.Equal(t, 8, cfg.Map.Zoom)
	assert.Equal(t, 19, cfg.Map.MaxZoom)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_URL", "https://example.com/accidents.geojson")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/accidents.geojson", cfg.DatasetURL)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidDatasetURL(t *testing.T) {
	t.Setenv("DATASET_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_URL")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_MapConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	content := []byte("title: Test Map\ntile_url: https://tiles.example/{z}/{x}/{y}.png\nzoom: 10\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("MAP_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Test Map", cfg.Map.Title)
	assert.Equal(t, "https://tiles.example/{z}/{x}/{y}.png", cfg.Map.TileURL)
	assert.Equal(t, 10, cfg.Map.Zoom)
	// Fields the file does not set keep their defaults.
	assert.Equal(t, 52.2, cfg.Map.CenterLat)
	assert.Equal(t, 19, cfg.Map.MaxZoom)
}

func TestLoad_MapConfigFileMissing(t *testing.T) {
	t.Setenv("MAP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_CONFIG")
}

func TestLoad_MapConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tile_url: [broken"), 0o600))
	t.Setenv("MAP_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_CONFIG")
}
