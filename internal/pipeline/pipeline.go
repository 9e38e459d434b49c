// Package pipeline orchestrates the single load-transform-render pass.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kooroshkz/CrashScope/internal/domain"
	"github.com/kooroshkz/CrashScope/internal/layer"
	"github.com/kooroshkz/CrashScope/internal/observability"
	"github.com/kooroshkz/CrashScope/internal/report"
)

// Fetcher loads the remote feature collection.
type Fetcher interface {
	Fetch(ctx context.Context) (*domain.FeatureCollection, error)
}

// MarkerBuilder converts features into rendered markers.
type MarkerBuilder interface {
	Build(fc *domain.FeatureCollection) []layer.Marker
}

// FailureReporter turns a pipeline failure into a user-facing notice.
type FailureReporter interface {
	Report(err error) report.Notice
}

// State is the pipeline lifecycle position. Loading is entered exactly once;
// Rendered and Failed are terminal.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateRendered State = "rendered"
	StateFailed   State = "failed"
)

// Snapshot is the pipeline outcome as served to the map widget. Layer,
// Bounds, and Notice are nil when their state does not apply.
type Snapshot struct {
	State    State
	Layer    *layer.ClusterGroup
	Bounds   *layer.Bounds
	Notice   *report.Notice
	LoadedAt time.Time
}

// Pipeline runs the pass once and holds the resulting snapshot for the HTTP
// layer. The pass itself is strictly sequential; the mutex only guards
// snapshot reads from concurrent request handlers.
type Pipeline struct {
	fetcher  Fetcher
	builder  MarkerBuilder
	reporter FailureReporter
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock

	mu   sync.RWMutex
	snap Snapshot
}

// New creates a Pipeline in the Idle state.
func New(f Fetcher, b MarkerBuilder, r FailureReporter, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	p := &Pipeline{
		fetcher:  f,
		builder:  b,
		reporter: r,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
	}
	p.setSnapshot(Snapshot{State: StateIdle})
	return p
}

// Run executes the pass: fetch, build markers, aggregate, fit bounds. It is
// called exactly once per process; there is no retry and the outcome is
// terminal. On failure the reporter is invoked once and the Failed snapshot
// replaces the Loading one.
func (p *Pipeline) Run(ctx context.Context) {
	p.setSnapshot(Snapshot{State: StateLoading})
	p.logger.Info("pipeline started")

	start := p.clock.Now()
	fc, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.fail(err)
		return
	}
	p.metrics.FetchDuration.Observe(p.clock.Since(start).Seconds())

	markers := p.builder.Build(fc)
	group := layer.Aggregate(markers)
	bounds := layer.FitBounds(markers)

	p.setSnapshot(Snapshot{
		State:    StateRendered,
		Layer:    &group,
		Bounds:   bounds,
		LoadedAt: p.clock.Now(),
	})
	p.logger.Info("render complete",
		"markers", len(markers),
		"fit_bounds", bounds != nil,
	)
}

func (p *Pipeline) fail(err error) {
	p.metrics.LoadFailures.WithLabelValues(failureReason(err)).Inc()
	notice := p.reporter.Report(err)
	p.setSnapshot(Snapshot{State: StateFailed, Notice: &notice})
}

// failureReason labels the failure for metrics: a non-success response, an
// unparseable body, or a request that never produced a response.
func failureReason(err error) string {
	var (
		statusErr *domain.StatusError
		parseErr  *domain.ParseError
	)
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "request"
	}
}

// Snapshot returns the current pipeline outcome.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// CheckReadiness returns nil once the pipeline has reached a terminal state.
// A failed run still counts as ready: the service serves the notice.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	switch p.Snapshot().State {
	case StateRendered, StateFailed:
		return nil
	default:
		return errors.New("pipeline has not finished its render pass yet")
	}
}

func (p *Pipeline) setSnapshot(s Snapshot) {
	p.mu.Lock()
	p.snap = s
	p.mu.Unlock()

	for _, st := range []State{StateIdle, StateLoading, StateRendered, StateFailed} {
		v := 0.0
		if st == s.State {
			v = 1.0
		}
		p.metrics.PipelineState.WithLabelValues(string(st)).Set(v)
	}
}
