package openweather

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
	"github.com/disasterwatch/alert-aggregation-service/internal/observability"
)

// Source runs the full per-location weather pipeline for every configured
// city and emits the assembled alerts. Locations are fetched concurrently;
// a failed or malformed location is logged and skipped without affecting
// the others.
type Source struct {
	client  *Client
	table   *domain.LocationTable
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewSource creates a weather alert source over the configured locations.
func NewSource(client *Client, table *domain.LocationTable, metrics *observability.Metrics, logger *slog.Logger) *Source {
	return &Source{
		client:  client,
		table:   table,
		metrics: metrics,
		logger:  logger,
	}
}

// Name identifies this source in logs and metrics.
func (s *Source) Name() string { return "openweather" }

// FetchAlerts fans out one fetch+analyze unit of work per location and joins
// them, allSettled-style: a slow or failing city never blocks its siblings.
func (s *Source) FetchAlerts(ctx context.Context, now time.Time) ([]domain.Alert, error) {
	cities := s.table.Cities()
	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic fan-out order for stable output

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	perLocation := make([][]domain.Alert, len(names))

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string, coord domain.Coordinates) {
			defer wg.Done()
			alerts, err := s.fetchLocation(ctx, name, coord, now)
			if err != nil {
				s.logger.Warn("location skipped", "location", name, "error", err)
				s.metrics.LocationsSkipped.Inc()
				return
			}
			mu.Lock()
			perLocation[i] = alerts
			mu.Unlock()
		}(i, name, cities[name])
	}
	wg.Wait()

	var merged []domain.Alert
	for _, alerts := range perLocation {
		merged = append(merged, alerts...)
	}
	return merged, nil
}

// fetchLocation runs fetch → normalize → analyze → assemble for one city.
// A forecast failure degrades to current-conditions-only rather than
// skipping the location.
func (s *Source) fetchLocation(ctx context.Context, name string, coord domain.Coordinates, now time.Time) ([]domain.Alert, error) {
	conditions, err := s.client.CurrentConditions(ctx, displayName(name), coord)
	if err != nil {
		return nil, err
	}

	buckets, err := s.client.Forecast(ctx, coord)
	if err != nil {
		s.logger.Warn("forecast unavailable, using current conditions only", "location", name, "error", err)
		buckets = nil
	}

	analysis := domain.AnalyzeConditions(conditions)
	risk := domain.ScoreFloodRisk(conditions, s.table)
	forecast := domain.ScanForecast(buckets)
	predictions := domain.PredictDisasters(conditions, risk, s.table)

	return domain.AssembleAlerts(conditions, analysis, risk, forecast, predictions, now), nil
}

// displayName renders a table key like "new delhi" as "New Delhi" for alert
// titles.
func displayName(key string) string {
	words := strings.Fields(key)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
