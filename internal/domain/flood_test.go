package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *LocationTable {
	return NewLocationTable(
		map[string]Coordinates{
			"Mumbai":  {Lat: 19.076, Lon: 72.8777},
			"Shimla":  {Lat: 31.1048, Lon: 77.1734},
			"Pune":    {Lat: 18.5204, Lon: 73.8567},
			"Chennai": {Lat: 13.0827, Lon: 80.2707},
		},
		[]string{"Shimla"},
		[]string{"Mumbai", "Chennai"},
		[]string{"Mumbai", "Chennai"},
	)
}

func TestScoreFloodRisk_Calm(t *testing.T) {
	risk := ScoreFloodRisk(calmConditions(), testTable())

	assert.Equal(t, FloodRiskLow, risk.Level)
	assert.Equal(t, 0, risk.Score)
	assert.Empty(t, risk.Factors)
}

func TestScoreFloodRisk_CumulativeRules(t *testing.T) {
	c := calmConditions()
	c.RainMmPerHour = 80
	c.HumidityPct = 70
	c.WindSpeedKmh = 20
	c.PressureHpa = 1005

	risk := ScoreFloodRisk(c, testTable())

	// All four rain tiers stack: 50+35+20+10.
	assert.Equal(t, 115, risk.Score)
	assert.Equal(t, FloodRiskExtreme, risk.Level)
	assert.GreaterOrEqual(t, risk.Score, 60)
}

func TestScoreFloodRisk_LocationFactors(t *testing.T) {
	t.Run("flood-prone bonus", func(t *testing.T) {
		c := calmConditions()
		c.LocationKey = "mumbai"

		risk := ScoreFloodRisk(c, testTable())

		assert.Equal(t, 15, risk.Score)
		require.Len(t, risk.Factors, 1)
		assert.Contains(t, risk.Factors[0], "flood-prone")
	})

	t.Run("coastal bonus needs wind", func(t *testing.T) {
		c := calmConditions()
		c.LocationKey = "chennai"
		c.WindSpeedKmh = 45

		risk := ScoreFloodRisk(c, testTable())

		// flood-prone 15 + wind>30 8 + coastal-with-wind 12.
		assert.Equal(t, 35, risk.Score)
		assert.Equal(t, FloodRiskModerate, risk.Level)
	})

	t.Run("coastal without wind adds nothing", func(t *testing.T) {
		c := calmConditions()
		c.LocationKey = "chennai"
		c.WindSpeedKmh = 20

		risk := ScoreFloodRisk(c, testTable())
		assert.Equal(t, 15, risk.Score)
	})
}

func TestScoreFloodRisk_Monotonic(t *testing.T) {
	base := calmConditions()

	score := func(mutate func(*WeatherConditions)) int {
		c := base
		mutate(&c)
		return ScoreFloodRisk(c, testTable()).Score
	}

	t.Run("rain", func(t *testing.T) {
		prev := -1
		for _, rain := range []float64{0, 11, 26, 51, 76} {
			s := score(func(c *WeatherConditions) { c.RainMmPerHour = rain })
			assert.Greater(t, s, prev, "rain=%v", rain)
			prev = s
		}
	})

	t.Run("humidity", func(t *testing.T) {
		assert.LessOrEqual(t,
			score(func(c *WeatherConditions) { c.HumidityPct = 80 }),
			score(func(c *WeatherConditions) { c.HumidityPct = 90 }))
		assert.LessOrEqual(t,
			score(func(c *WeatherConditions) { c.HumidityPct = 90 }),
			score(func(c *WeatherConditions) { c.HumidityPct = 96 }))
	})

	t.Run("wind", func(t *testing.T) {
		assert.LessOrEqual(t,
			score(func(c *WeatherConditions) { c.WindSpeedKmh = 20 }),
			score(func(c *WeatherConditions) { c.WindSpeedKmh = 40 }))
		assert.LessOrEqual(t,
			score(func(c *WeatherConditions) { c.WindSpeedKmh = 40 }),
			score(func(c *WeatherConditions) { c.WindSpeedKmh = 70 }))
	})

	t.Run("pressure inverse", func(t *testing.T) {
		assert.GreaterOrEqual(t,
			score(func(c *WeatherConditions) { c.PressureHpa = 975 }),
			score(func(c *WeatherConditions) { c.PressureHpa = 995 }))
		assert.GreaterOrEqual(t,
			score(func(c *WeatherConditions) { c.PressureHpa = 995 }),
			score(func(c *WeatherConditions) { c.PressureHpa = 1013 }))
	})
}

func TestFloodLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		level FloodRiskLevel
	}{
		{0, FloodRiskLow},
		{24, FloodRiskLow},
		{25, FloodRiskModerate},
		{44, FloodRiskModerate},
		{45, FloodRiskHigh},
		{69, FloodRiskHigh},
		{70, FloodRiskExtreme},
		{150, FloodRiskExtreme},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, floodLevelForScore(tt.score), "score=%d", tt.score)
	}
}

func TestScoreFloodRisk_FactorsInRuleOrder(t *testing.T) {
	c := calmConditions()
	c.LocationKey = "mumbai"
	c.RainMmPerHour = 30
	c.HumidityPct = 90
	c.PressureHpa = 990

	risk := ScoreFloodRisk(c, testTable())

	require.Equal(t, []string{
		"Heavy rainfall above 25 mm/h",
		"Moderate rainfall above 10 mm/h",
		"Very high humidity",
		"Low atmospheric pressure",
		"Historically flood-prone area",
	}, risk.Factors)
	assert.Equal(t, 20+10+10+10+15, risk.Score)
}
