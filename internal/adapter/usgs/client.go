package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
)

// Client fetches recent earthquakes from the USGS FDSN event service and
// maps them into the common alert shape.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	bbox         domain.BoundingBox
	minMagnitude float64
	lookback     time.Duration
	logger       *slog.Logger
}

// NewClient creates a seismic alert source over the given bounding box.
func NewClient(bbox domain.BoundingBox, minMagnitude float64, lookback time.Duration, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      "https://earthquake.usgs.gov/fdsnws/event/1/query",
		bbox:         bbox,
		minMagnitude: minMagnitude,
		lookback:     lookback,
		logger:       logger,
	}
}

// Name identifies this source in logs and metrics.
func (c *Client) Name() string { return "usgs" }

// FetchAlerts queries the event feed for the lookback window and converts
// in-box features to earthquake alerts.
func (c *Client) FetchAlerts(ctx context.Context, now time.Time) ([]domain.Alert, error) {
	params := url.Values{
		"format":       {"geojson"},
		"starttime":    {now.Add(-c.lookback).UTC().Format("2006-01-02")},
		"minmagnitude": {fmt.Sprintf("%.1f", c.minMagnitude)},
		"minlatitude":  {fmt.Sprintf("%.4f", c.bbox.MinLat)},
		"maxlatitude":  {fmt.Sprintf("%.4f", c.bbox.MaxLat)},
		"minlongitude": {fmt.Sprintf("%.4f", c.bbox.MinLon)},
		"maxlongitude": {fmt.Sprintf("%.4f", c.bbox.MaxLon)},
		"orderby":      {"time"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var feed response
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode usgs response: %w", err)
	}

	return mapFeatures(feed.Features, c.bbox), nil
}

// mapFeatures converts GeoJSON features to alerts, dropping anything the
// service returned outside the configured box.
func mapFeatures(features []feature, bbox domain.BoundingBox) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(features))
	for _, f := range features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		lon, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if !bbox.Contains(lat, lon) {
			continue
		}
		alerts = append(alerts, mapFeature(f, lat, lon))
	}
	return alerts
}

func mapFeature(f feature, lat, lon float64) domain.Alert {
	occurred := time.UnixMilli(f.Properties.Time).UTC()

	details := fmt.Sprintf("Magnitude %.1f earthquake near %s.", f.Properties.Mag, f.Properties.Place)
	if f.Properties.Tsunami > 0 {
		details += "\nTsunami threat flagged for coastal areas."
	}
	if f.Properties.MMI > 0 {
		details += fmt.Sprintf("\nEstimated shaking intensity: %.1f MMI.", f.Properties.MMI)
	}
	if f.Properties.Status != "" {
		details += fmt.Sprintf("\nReport status: %s.", f.Properties.Status)
	}

	return domain.Alert{
		Title:       fmt.Sprintf("M%.1f - %s", f.Properties.Mag, f.Properties.Place),
		Type:        "Earthquake",
		Severity:    severityForMagnitude(f.Properties.Mag),
		Date:        occurred.Format(time.RFC3339),
		Details:     details,
		Source:      "USGS",
		URL:         f.Properties.URL,
		Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
	}
}

// severityForMagnitude maps Richter magnitude to the alert scale: damaging
// quakes (M6+) are high, widely-felt ones (M5+) moderate, the rest low.
func severityForMagnitude(mag float64) domain.Severity {
	switch {
	case mag >= 6:
		return domain.SeverityHigh
	case mag >= 5:
		return domain.SeverityModerate
	default:
		return domain.SeverityLow
	}
}

// USGS GeoJSON response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties struct {
		Mag     float64 `json:"mag"`
		Place   string  `json:"place"`
		Time    int64   `json:"time"`
		Tsunami int     `json:"tsunami"`
		MMI     float64 `json:"mmi"`
		Status  string  `json:"status"`
		URL     string  `json:"url"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}
