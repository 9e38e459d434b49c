// Package config handles service configuration from environment variables
// plus an optional YAML presentation file for the served map.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetURL      string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	Map MapConfig
}

// MapConfig is the presentation side of the served page: base tile layer and
// the initial view used before (or instead of) a bounds fit. Loaded from the
// optional MAP_CONFIG YAML file; unset fields keep their defaults.
type MapConfig struct {
	Title       string  `yaml:"title" json:"title"`
	TileURL     string  `yaml:"tile_url" json:"tile_url"`
	Attribution string  `yaml:"attribution" json:"attribution"`
	CenterLat   float64 `yaml:"center_lat" json:"center_lat"`
	CenterLon   float64 `yaml:"center_lon" json:"center_lon"`
	Zoom        int     `yaml:"zoom" json:"zoom"`
	MaxZoom     int     `yaml:"max_zoom" json:"max_zoom"`
}

const defaultDatasetURL = "https://kooroshkz.github.io/CrashScope/data/accidents_2022_2024_full.geojson"

func defaultMapConfig() MapConfig {
	return MapConfig{
		Title:       "CrashScope — Netherlands Road Accidents",
		TileURL:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		CenterLat:   52.2,
		CenterLon:   5.3,
		Zoom:        8,
		MaxZoom:     19,
	}
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetURL:      envOrDefault("DATASET_URL", defaultDatasetURL),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Map:             defaultMapConfig(),
	}

	if cfg.DatasetURL == "" {
		return nil, errors.New("DATASET_URL is required")
	}
	if u, err := url.Parse(cfg.DatasetURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("DATASET_URL is not a valid absolute URL: %q", cfg.DatasetURL)
	}

	if path := os.Getenv("MAP_CONFIG"); path != "" {
		if err := loadMapConfig(path, &cfg.Map); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func loadMapConfig(path string, mc *MapConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read MAP_CONFIG: %w", err)
	}
	// Unmarshal over the defaults so a partial file only overrides what it sets.
	if err := yaml.Unmarshal(data, mc); err != nil {
		return fmt.Errorf("parse MAP_CONFIG: %w", err)
	}
	if mc.TileURL == "" {
		return errors.New("MAP_CONFIG: tile_url must not be empty")
	}
	return nil
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
