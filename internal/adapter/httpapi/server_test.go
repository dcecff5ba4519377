package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/httpapi"
	"github.com/disasterwatch/alert-aggregation-service/internal/aggregator"
	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockSnapshots struct {
	snap aggregator.Snapshot
}

func (m *mockSnapshots) Snapshot() aggregator.Snapshot { return m.snap }

var testSnapshot = aggregator.Snapshot{
	RunID:       "4f7c1d92-0000-4000-8000-deadbeef0001",
	GeneratedAt: time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC),
	Alerts: []domain.Alert{
		{
			ID:          "Flash Flood-Flash Flood Warning - Mumbai-2026-08-30T12:00:00Z",
			Title:       "Flash Flood Warning - Mumbai",
			Type:        "Flash Flood",
			Severity:    domain.SeverityHigh,
			Date:        "2026-08-30T12:00:00Z",
			Source:      "OpenWeather",
			Coordinates: domain.Coordinates{Lat: 19.076, Lon: 72.8777},
		},
		{
			ID:          "Earthquake-M6.5 - Kutch, Gujarat-2026-08-29T04:00:00Z",
			Title:       "M6.5 - Kutch, Gujarat",
			Type:        "Earthquake",
			Severity:    domain.SeverityHigh,
			Date:        "2026-08-29T04:00:00Z",
			Source:      "USGS",
			Coordinates: domain.Coordinates{Lat: 23.7337, Lon: 69.8597},
		},
		{
			ID:          "Heat Wave-Heat Wave Warning - Delhi-2026-08-30T12:00:00Z",
			Title:       "Heat Wave Warning - Delhi",
			Type:        "Heat Wave",
			Severity:    domain.SeverityModerate,
			Date:        "2026-08-30T12:00:00Z",
			Source:      "OpenWeather",
			Coordinates: domain.Coordinates{Lat: 28.7041, Lon: 77.1025},
		},
	},
}

func newTestServer(snap aggregator.Snapshot, readyErr error) *httpapi.Server {
	return httpapi.NewServer(":0", &mockSnapshots{snap: snap}, &mockReadiness{err: readyErr}, slog.Default())
}

func doGET(srv *httpapi.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestAlertsReturnsLatestSnapshot(t *testing.T) {
	srv := newTestServer(testSnapshot, nil)
	rec := doGET(srv, "/api/alerts")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RunID  string         `json:"run_id"`
		Count  int            `json:"count"`
		Alerts []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, testSnapshot.RunID, body.RunID)
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Alerts, 3)
	assert.Equal(t, "Flash Flood Warning - Mumbai", body.Alerts[0].Title)
}

func TestAlertsFilterQuery(t *testing.T) {
	srv := newTestServer(testSnapshot, nil)

	tests := []struct {
		name       string
		query      string
		wantTitles []string
	}{
		{"matches type", "earthquake", []string{"M6.5 - Kutch, Gujarat"}},
		{"matches title substring", "mumbai", []string{"Flash Flood Warning - Mumbai"}},
		{"matches severity", "moderate", []string{"Heat Wave Warning - Delhi"}},
		{"no match", "tsunami", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGET(srv, "/api/alerts?q="+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Count  int            `json:"count"`
				Alerts []domain.Alert `json:"alerts"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, len(tt.wantTitles), body.Count)

			var titles []string
			for _, a := range body.Alerts {
				titles = append(titles, a.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestAlertsEmptySnapshot(t *testing.T) {
	srv := newTestServer(aggregator.Snapshot{}, nil)
	rec := doGET(srv, "/api/alerts")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alerts":[]`, "empty list serializes as [], not null")
}

func TestGroupedAlerts(t *testing.T) {
	srv := newTestServer(testSnapshot, nil)
	rec := doGET(srv, "/api/alerts/grouped")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RunID  string                       `json:"run_id"`
		Groups map[string]domain.AlertGroup `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, testSnapshot.RunID, body.RunID)
	require.Len(t, body.Groups, 3)

	mumbai, ok := body.Groups["19.0760,72.8777"]
	require.True(t, ok)
	assert.Equal(t, domain.SeverityHigh, mumbai.MaxSeverity)
	require.Len(t, mumbai.Alerts, 1)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(testSnapshot, nil)
	rec := doGET(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(testSnapshot, nil)
	rec := doGET(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(testSnapshot, fmt.Errorf("no pass completed"))
	rec := doGET(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no pass completed", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(testSnapshot, nil)
	rec := doGET(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
