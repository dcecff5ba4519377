package eonet

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

// Client fetches open events from the NASA EONET feed for one category and
// maps them into the common alert shape. Two instances cover landslides and
// the optional severe-storms source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bbox       domain.BoundingBox
	category   string
	alertType  string
	severity   domain.Severity
	logger     *slog.Logger
}

// NewLandslideClient creates the landslide event source.
func NewLandslideClient(bbox domain.BoundingBox, timeout time.Duration, logger *slog.Logger) *Client {
	return newClient(bbox, "landslides", "Landslide", domain.SeverityHigh, timeout, logger)
}

// NewSevereStormClient creates the optional severe-storm event source.
func NewSevereStormClient(bbox domain.BoundingBox, timeout time.Duration, logger *slog.Logger) *Client {
	return newClient(bbox, "severeStorms", "Severe Storm", domain.SeverityModerate, timeout, logger)
}

func newClient(bbox domain.BoundingBox, category, alertType string, severity domain.Severity, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://eonet.gsfc.nasa.gov/api/v3/events",
		bbox:       bbox,
		category:   category,
		alertType:  alertType,
		severity:   severity,
		logger:     logger,
	}
}

// Name identifies this source in logs and metrics.
func (c *Client) Name() string { return "eonet-" + c.category }

// FetchAlerts queries open events in the category and converts the in-box
// ones to alerts.
func (c *Client) FetchAlerts(ctx context.Context, _ time.Time) ([]domain.Alert, error) {
	// EONET bbox order is lonMin,latMax,lonMax,latMin.
	params := url.Values{
		"category": {c.category},
		"status":   {"open"},
		"bbox": {fmt.Sprintf("%.4f,%.4f,%.4f,%.4f",
			c.bbox.MinLon, c.bbox.MaxLat, c.bbox.MaxLon, c.bbox.MinLat)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eonet %s request: %w", c.category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("eonet API error: status %d: %s", resp.StatusCode, body)
	}

	var feed response
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode eonet response: %w", err)
	}

	return c.mapEvents(feed.Events), nil
}

func (c *Client) mapEvents(events []event) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(events))
	for _, e := range events {
		if e.Closed != "" {
			continue
		}
		coord, date, ok := firstPoint(e.Geometry)
		if !ok || !c.bbox.Contains(coord.Lat, coord.Lon) {
			continue
		}

		alert := domain.Alert{
			Title:       e.Title,
			Type:        c.alertType,
			Severity:    c.severity,
			Date:        date,
			Details:     fmt.Sprintf("%s event reported by satellite observation.\nEvent is currently active.", c.alertType),
			Source:      "NASA EONET",
			Coordinates: coord,
		}
		if len(e.Sources) > 0 {
			alert.URL = e.Sources[0].URL
			alert.Details += fmt.Sprintf("\nPrimary source: %s.", e.Sources[0].ID)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// firstPoint extracts the first point geometry's coordinate and timestamp.
func firstPoint(geometry []geometryEntry) (domain.Coordinates, string, bool) {
	for _, g := range geometry {
		if len(g.Coordinates) < 2 {
			continue
		}
		return domain.Coordinates{Lat: g.Coordinates[1], Lon: g.Coordinates[0]}, g.Date, true
	}
	return domain.Coordinates{}, "", false
}

// EONET v3 response types.

type response struct {
	Events []event `json:"events"`
}

type event struct {
	Title   string `json:"title"`
	Closed  string `json:"closed"`
	Sources []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"sources"`
	Geometry []geometryEntry `json:"geometry"`
}

type geometryEntry struct {
	Date        string    `json:"date"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat] for point geometry
}
