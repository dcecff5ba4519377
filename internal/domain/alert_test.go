package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityLow, SeverityHigh))
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityHigh, SeverityModerate))
	assert.Equal(t, SeverityModerate, MaxSeverity(SeverityModerate, SeverityLow))
	assert.Equal(t, SeverityLow, MaxSeverity(SeverityLow, SeverityLow))
}

func TestAlertID(t *testing.T) {
	id := AlertID("Earthquake", "M6.5 - Kutch, Gujarat", "2026-08-30T12:00:00Z")
	assert.Equal(t, "Earthquake-M6.5 - Kutch, Gujarat-2026-08-30T12:00:00Z", id)

	// Same event reported twice collides by design; distinct titles do not.
	other := AlertID("Earthquake", "M6.5 - Jaipur, Rajasthan", "2026-08-30T12:00:00Z")
	assert.NotEqual(t, id, other)
}

func TestBoundingBox_Contains(t *testing.T) {
	india := BoundingBox{MinLat: 6, MaxLat: 37, MinLon: 68, MaxLon: 98}

	assert.True(t, india.Contains(19.076, 72.8777)) // Mumbai
	assert.True(t, india.Contains(6, 68))           // inclusive edges
	assert.False(t, india.Contains(40.7, -74.0))    // New York
	assert.False(t, india.Contains(35.6, 139.7))    // Tokyo
}

func TestFilterAlerts(t *testing.T) {
	alerts := sampleAlerts()

	t.Run("empty query matches all", func(t *testing.T) {
		assert.Len(t, FilterAlerts(alerts, ""), len(alerts))
		assert.Len(t, FilterAlerts(alerts, "   "), len(alerts))
	})

	t.Run("title match is case-insensitive", func(t *testing.T) {
		got := FilterAlerts(alerts, "mumbai")
		assert.Len(t, got, 2)
	})

	t.Run("severity match", func(t *testing.T) {
		got := FilterAlerts(alerts, "high")
		assert.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("type match", func(t *testing.T) {
		got := FilterAlerts(alerts, "flash flood")
		assert.Len(t, got, 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterAlerts(alerts, "volcano"))
	})
}

func TestLocationTable_Lookups(t *testing.T) {
	table := testTable()

	coord, ok := table.City("MUMBAI")
	assert.True(t, ok)
	assert.Equal(t, Coordinates{Lat: 19.076, Lon: 72.8777}, coord)

	_, ok = table.City("atlantis")
	assert.False(t, ok)

	assert.True(t, table.IsHillStation("Shimla"))
	assert.False(t, table.IsHillStation("Mumbai"))
	assert.True(t, table.IsFloodProne("mumbai"))
	assert.True(t, table.IsCoastal("Chennai"))
	assert.False(t, table.IsCoastal("Pune"))
}
