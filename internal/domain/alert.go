package domain

import "strings"

// Severity is the three-level alert severity scale used across all sources.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// rank orders severities: high > moderate > low. Unknown values rank below low.
func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityModerate:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// MaxSeverity returns the higher of two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox delimits the geographic area the aggregator monitors.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the coordinate falls inside the box (inclusive).
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Alert is the externally visible unit produced by one aggregation pass.
// Alerts are immutable once assembled; a new pass produces an entirely new
// list and no cross-pass identity is guaranteed.
type Alert struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Severity    Severity    `json:"severity"`
	Date        string      `json:"date"` // ISO-8601
	Details     string      `json:"details"`
	Source      string      `json:"source"`
	URL         string      `json:"url,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// AlertID synthesizes the alert identifier from its type, title, and date.
// Two reports of the same event collide deliberately, which deduplicates by
// identity; distinct events always differ in at least one component.
func AlertID(alertType, title, date string) string {
	return alertType + "-" + title + "-" + date
}

// FilterAlerts returns the alerts whose title, type, severity, details, or
// source contain the query, case-insensitively. An empty query matches all.
func FilterAlerts(alerts []Alert, query string) []Alert {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return alerts
	}
	matched := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		haystack := strings.ToLower(a.Title + " " + a.Type + " " + string(a.Severity) + " " + a.Details + " " + a.Source)
		if strings.Contains(haystack, query) {
			matched = append(matched, a)
		}
	}
	return matched
}
