package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func predictionTypes(predictions []Prediction) []string {
	types := make([]string, 0, len(predictions))
	for _, p := range predictions {
		types = append(types, p.Type)
	}
	return types
}

func findPrediction(t *testing.T, predictions []Prediction, typ string) Prediction {
	t.Helper()
	for _, p := range predictions {
		if p.Type == typ {
			return p
		}
	}
	t.Fatalf("no %q prediction in %v", typ, predictionTypes(predictions))
	return Prediction{}
}

func TestPredictDisasters_Calm(t *testing.T) {
	c := calmConditions()
	risk := ScoreFloodRisk(c, testTable())

	assert.Empty(t, PredictDisasters(c, risk, testTable()))
}

func TestPredictDisasters_HeatWaveAndDrought(t *testing.T) {
	c := calmConditions()
	c.TemperatureC = 46
	c.HumidityPct = 20
	c.WindSpeedKmh = 5
	risk := ScoreFloodRisk(c, testTable())
	require.Equal(t, FloodRiskLow, risk.Level)
	require.Equal(t, 0, risk.Score)

	predictions := PredictDisasters(c, risk, testTable())

	require.Equal(t, []string{"Heat Wave", "Drought"}, predictionTypes(predictions))

	heat := findPrediction(t, predictions, "Heat Wave")
	assert.Equal(t, SeverityHigh, heat.Severity)
	assert.Equal(t, "EXTREME HEAT", heat.EmergencyLevel)

	drought := findPrediction(t, predictions, "Drought")
	assert.Equal(t, SeverityModerate, drought.Severity)
}

func TestPredictDisasters_FlashFloodFromRiskLevel(t *testing.T) {
	tests := []struct {
		level       FloodRiskLevel
		probability float64
		severity    Severity
		expect      bool
	}{
		{FloodRiskExtreme, 0.95, SeverityHigh, true},
		{FloodRiskHigh, 0.85, SeverityHigh, true},
		{FloodRiskModerate, 0.65, SeverityModerate, true},
		{FloodRiskLow, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			p, ok := predictFlashFlood(calmConditions(), FloodRisk{Level: tt.level})
			assert.Equal(t, tt.expect, ok)
			if tt.expect {
				assert.Equal(t, tt.probability, p.Probability)
				assert.Equal(t, tt.severity, p.Severity)
			}
		})
	}
}

func TestPredictDisasters_CycloneIntensity(t *testing.T) {
	tests := []struct {
		wind      float64
		intensity string
		severity  Severity
	}{
		{130, "SUPER CYCLONE", SeverityHigh},
		{95, "VERY SEVERE CYCLONIC STORM", SeverityHigh},
		{65, "SEVERE CYCLONIC STORM", SeverityHigh},
		{30, "CYCLONIC STORM", SeverityModerate},
	}

	for _, tt := range tests {
		t.Run(tt.intensity, func(t *testing.T) {
			c := calmConditions()
			c.RainMmPerHour = 35
			c.WindSpeedKmh = tt.wind

			p, ok := predictCyclone(c)
			require.True(t, ok)
			assert.Equal(t, tt.intensity, p.EmergencyLevel)
			assert.Equal(t, tt.severity, p.Severity)
		})
	}

	t.Run("needs both rain and wind", func(t *testing.T) {
		c := calmConditions()
		c.RainMmPerHour = 35
		c.WindSpeedKmh = 20
		_, ok := predictCyclone(c)
		assert.False(t, ok)

		c.RainMmPerHour = 10
		c.WindSpeedKmh = 80
		_, ok = predictCyclone(c)
		assert.False(t, ok)
	})
}

func TestPredictDisasters_LandslideNeedsHillStation(t *testing.T) {
	c := calmConditions()
	c.RainMmPerHour = 45
	risk := ScoreFloodRisk(c, testTable())

	t.Run("plains city", func(t *testing.T) {
		c.LocationKey = "pune"
		types := predictionTypes(PredictDisasters(c, risk, testTable()))
		assert.NotContains(t, types, "Landslide")
	})

	t.Run("hill station", func(t *testing.T) {
		c.LocationKey = "shimla"
		p := findPrediction(t, PredictDisasters(c, risk, testTable()), "Landslide")
		assert.Equal(t, "HIGH", p.EmergencyLevel)
		assert.Equal(t, SeverityHigh, p.Severity)
	})

	t.Run("extreme rain", func(t *testing.T) {
		c.LocationKey = "shimla"
		c.RainMmPerHour = 70
		p := findPrediction(t, PredictDisasters(c, ScoreFloodRisk(c, testTable()), testTable()), "Landslide")
		assert.Equal(t, "EXTREME", p.EmergencyLevel)
	})
}

func TestPredictDisasters_SecondaryHazards(t *testing.T) {
	t.Run("thunderstorm", func(t *testing.T) {
		c := calmConditions()
		c.CloudPct = 85
		c.WindSpeedKmh = 25
		p := findPrediction(t, PredictDisasters(c, FloodRisk{Level: FloodRiskLow}, testTable()), "Thunderstorm")
		assert.Equal(t, SeverityModerate, p.Severity)
	})

	t.Run("dense fog", func(t *testing.T) {
		c := calmConditions()
		c.VisibilityM = 600
		c.HumidityPct = 95
		p := findPrediction(t, PredictDisasters(c, FloodRisk{Level: FloodRiskLow}, testTable()), "Dense Fog")
		assert.Equal(t, 0.7, p.Probability)
	})

	t.Run("cold wave", func(t *testing.T) {
		c := calmConditions()
		c.TemperatureC = 2
		p := findPrediction(t, PredictDisasters(c, FloodRisk{Level: FloodRiskLow}, testTable()), "Cold Wave")
		assert.Equal(t, SeverityHigh, p.Severity)
	})
}

func TestPredictDisasters_StableOrder(t *testing.T) {
	// A monsoon cyclone over a hill station fires several rules at once; the
	// emission order must stay fixed for deterministic fixtures.
	c := calmConditions()
	c.LocationKey = "shimla"
	c.RainMmPerHour = 55
	c.WindSpeedKmh = 70
	c.HumidityPct = 92
	c.CloudPct = 90
	c.PressureHpa = 985
	risk := ScoreFloodRisk(c, testTable())

	types := predictionTypes(PredictDisasters(c, risk, testTable()))
	assert.Equal(t, []string{"Flash Flood", "Cyclone", "Landslide", "Thunderstorm"}, types)
}
