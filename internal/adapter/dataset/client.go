// Package dataset fetches the remote accident GeoJSON artifact.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kooroshkz/CrashScope/internal/domain"
	"github.com/kooroshkz/CrashScope/internal/observability"
)

// Client loads the accident feature collection with a single HTTP GET. The
// load is one attempt per process run: no retry and no request timeout, so a
// slow origin resolves or fails on its own terms. Cancellation only happens
// through the process-shutdown context.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a dataset client for the given URL.
func NewClient(url string, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{},
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch issues the dataset request and decodes the feature collection.
// A non-2xx response yields a *domain.StatusError carrying the status code;
// an undecodable body yields a *domain.ParseError.
func (c *Client) Fetch(ctx context.Context) (*domain.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.StatusError{Code: resp.StatusCode}
	}

	body := &countingReader{r: resp.Body}
	fc, err := domain.DecodeFeatureCollection(body)
	if err != nil {
		return nil, err
	}

	c.metrics.FetchBytes.Set(float64(body.n))
	c.metrics.FeaturesLoaded.Set(float64(len(fc.Features)))
	c.logger.Info("dataset fetched",
		"url", c.url,
		"features", len(fc.Features),
		"bytes", body.n,
	)

	return fc, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
