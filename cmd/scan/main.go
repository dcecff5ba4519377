// Command scan runs a single aggregation pass and prints the resulting
// alerts as JSON. Useful for checking source connectivity and alert output
// without starting the service.
//
// Usage:
//
//	go run ./cmd/scan [-q flood] [-grouped] [-pretty]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/eonet"
	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/openweather"
	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/usgs"
	"github.com/disasterwatch/alert-aggregation-service/internal/aggregator"
	"github.com/disasterwatch/alert-aggregation-service/internal/config"
	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
	"github.com/disasterwatch/alert-aggregation-service/internal/observability"
)

func main() {
	query := flag.String("q", "", "filter alerts by substring")
	grouped := flag.Bool("grouped", false, "print alerts grouped by coordinate")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall pass deadline")
	verbose := flag.Bool("v", false, "log source progress to stderr")
	flag.Parse()

	if code := run(*query, *grouped, *pretty, *timeout, *verbose); code != 0 {
		os.Exit(code)
	}
}

func run(query string, grouped, pretty bool, timeout time.Duration, verbose bool) int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}

	var logOut io.Writer = io.Discard
	if verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))
	metrics := observability.NewMetricsForTesting()

	table, err := config.LoadLocationTable(cfg.LocationsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load location tables: %v\n", err)
		return 1
	}

	weatherClient := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.RequestTimeout, cfg.WeatherRateLimit, metrics, logger)
	sources := []aggregator.Source{
		openweather.NewSource(weatherClient, table, metrics, logger),
		usgs.NewClient(cfg.BoundingBox, cfg.SeismicMinMagnitude, cfg.SeismicLookback, cfg.RequestTimeout, logger),
		eonet.NewLandslideClient(cfg.BoundingBox, cfg.RequestTimeout, logger),
	}
	if cfg.SevereStormsEnabled {
		sources = append(sources, eonet.NewSevereStormClient(cfg.BoundingBox, cfg.RequestTimeout, logger))
	}

	agg := aggregator.New(sources, nil, logger, metrics, clockwork.NewRealClock(), cfg.FetchInterval)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	snap := agg.RunPass(ctx)

	alerts := snap.Alerts
	if query != "" {
		alerts = domain.FilterAlerts(alerts, query)
	}

	var out any
	if grouped {
		out = domain.GroupAlerts(alerts)
	} else {
		out = alerts
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: encode output: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "run %s: %d alerts (%d after filter)\n", snap.RunID, len(snap.Alerts), len(alerts))
	return 0
}
