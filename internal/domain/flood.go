package domain

// FloodRiskLevel is the four-step flood risk classification.
type FloodRiskLevel string

const (
	FloodRiskLow      FloodRiskLevel = "LOW"
	FloodRiskModerate FloodRiskLevel = "MODERATE"
	FloodRiskHigh     FloodRiskLevel = "HIGH"
	FloodRiskExtreme  FloodRiskLevel = "EXTREME"
)

// FloodRisk is the Flood Risk Scorer's output: an additive score, the level
// derived from it, and the human-readable factors that contributed.
type FloodRisk struct {
	Level   FloodRiskLevel `json:"level"`
	Score   int            `json:"score"`
	Factors []string       `json:"factors"`
}

// floodRule is one additive scoring rule. Rules are not mutually exclusive;
// every rule that fires contributes its points and its factor string, in
// table order.
type floodRule struct {
	fires  func(c WeatherConditions, table *LocationTable) bool
	points int
	factor string
}

var floodRules = []floodRule{
	{func(c WeatherConditions, _ *LocationTable) bool { return c.RainMmPerHour > 75 }, 50, "Extreme rainfall rate above 75 mm/h"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.RainMmPerHour > 50 }, 35, "Very heavy rainfall above 50 mm/h"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.RainMmPerHour > 25 }, 20, "Heavy rainfall above 25 mm/h"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.RainMmPerHour > 10 }, 10, "Moderate rainfall above 10 mm/h"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.HumidityPct > 95 }, 15, "Near-saturated air"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.HumidityPct > 85 }, 10, "Very high humidity"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.PressureHpa < 980 }, 20, "Deep low-pressure system"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.PressureHpa < 1000 }, 10, "Low atmospheric pressure"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.WindSpeedKmh > 60 }, 15, "Storm-force winds"},
	{func(c WeatherConditions, _ *LocationTable) bool { return c.WindSpeedKmh > 30 }, 8, "Strong winds"},
	{func(c WeatherConditions, t *LocationTable) bool { return t.IsFloodProne(c.LocationKey) }, 15, "Historically flood-prone area"},
	{func(c WeatherConditions, t *LocationTable) bool { return t.IsCoastal(c.LocationKey) && c.WindSpeedKmh > 40 }, 12, "Coastal area with strong onshore winds"},
}

// ScoreFloodRisk computes the weighted flood risk for current conditions.
// The level is a deterministic step function of the score.
func ScoreFloodRisk(c WeatherConditions, table *LocationTable) FloodRisk {
	risk := FloodRisk{Level: FloodRiskLow}
	for _, rule := range floodRules {
		if rule.fires(c, table) {
			risk.Score += rule.points
			risk.Factors = append(risk.Factors, rule.factor)
		}
	}
	risk.Level = floodLevelForScore(risk.Score)
	return risk
}

func floodLevelForScore(score int) FloodRiskLevel {
	switch {
	case score >= 70:
		return FloodRiskExtreme
	case score >= 45:
		return FloodRiskHigh
	case score >= 25:
		return FloodRiskModerate
	default:
		return FloodRiskLow
	}
}
