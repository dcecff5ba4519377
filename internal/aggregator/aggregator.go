package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
	"github.com/disasterwatch/alert-aggregation-service/internal/observability"
)

// Source produces a batch of alerts from one upstream feed.
type Source interface {
	Name() string
	FetchAlerts(ctx context.Context, now time.Time) ([]domain.Alert, error)
}

// Publisher delivers a finished batch of alerts downstream.
type Publisher interface {
	PublishAlerts(ctx context.Context, runID string, alerts []domain.Alert) error
}

// Snapshot is the result of one aggregation pass.
type Snapshot struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Alerts      []domain.Alert `json:"alerts"`
}

// Aggregator fans out to all sources on a fixed interval and keeps the
// latest combined snapshot for the API to serve.
type Aggregator struct {
	sources   []Source
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	interval  time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
	ready    atomic.Bool
}

// New creates an Aggregator over the given sources. publisher may be nil.
func New(sources []Source, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, interval time.Duration) *Aggregator {
	return &Aggregator{
		sources:   sources,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		interval:  interval,
	}
}

// CheckReadiness returns nil once at least one pass has completed.
func (a *Aggregator) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("aggregator has not completed a pass yet")
	}
	return nil
}

// Snapshot returns the latest pass result. The alerts slice is shared and
// must not be mutated by callers.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Run executes an immediate pass and then one per interval until the
// context is cancelled.
func (a *Aggregator) Run(ctx context.Context) error {
	a.logger.Info("aggregator started", "sources", len(a.sources), "interval", a.interval)
	a.metrics.AggregatorRunning.Set(1)
	defer a.metrics.AggregatorRunning.Set(0)

	a.RunPass(ctx)

	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("aggregator stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			a.RunPass(ctx)
		}
	}
}

// RunPass queries every source concurrently and installs the combined
// result as the new snapshot. A failing source contributes nothing and
// never interrupts its siblings.
func (a *Aggregator) RunPass(ctx context.Context) Snapshot {
	start := a.clock.Now()
	now := start.UTC()
	runID := uuid.NewString()

	results := make([][]domain.Alert, len(a.sources))
	errs := make([]error, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = src.FetchAlerts(ctx, now)
		}()
	}
	wg.Wait()

	combined := make([]domain.Alert, 0)
	for i, src := range a.sources {
		if errs[i] != nil {
			a.logger.Warn("source fetch failed, continuing without it",
				"source", src.Name(), "run_id", runID, "error", errs[i])
			a.metrics.SourceFetches.WithLabelValues(src.Name(), "error").Inc()
			continue
		}
		a.metrics.SourceFetches.WithLabelValues(src.Name(), "success").Inc()
		combined = append(combined, results[i]...)
	}

	for i := range combined {
		combined[i].ID = domain.AlertID(combined[i].Type, combined[i].Title, combined[i].Date)
	}

	snap := Snapshot{RunID: runID, GeneratedAt: now, Alerts: combined}

	a.mu.Lock()
	a.snapshot = snap
	a.mu.Unlock()
	a.ready.Store(true)

	a.metrics.AlertsCollected.Add(float64(len(combined)))
	a.metrics.LastPassTimestamp.Set(float64(now.Unix()))
	a.metrics.PassDuration.Observe(a.clock.Since(start).Seconds())
	a.recordActiveAlerts(combined)

	a.logger.Info("aggregation pass complete",
		"run_id", runID, "alerts", len(combined), "duration", a.clock.Since(start))

	if a.publisher != nil && len(combined) > 0 {
		if err := a.publisher.PublishAlerts(ctx, runID, combined); err != nil {
			a.logger.Error("publish alerts failed", "run_id", runID, "error", err)
		}
	}

	return snap
}

func (a *Aggregator) recordActiveAlerts(alerts []domain.Alert) {
	counts := map[domain.Severity]int{
		domain.SeverityLow:      0,
		domain.SeverityModerate: 0,
		domain.SeverityHigh:     0,
	}
	for _, alert := range alerts {
		counts[alert.Severity]++
	}
	for severity, n := range counts {
		a.metrics.ActiveAlerts.WithLabelValues(string(severity)).Set(float64(n))
	}
}
