package domain

import "fmt"

// Prediction is a typed local-disaster forecast for one location, derived
// from current conditions, the flood risk score, and the static location
// tables. Predictions are independent; several can co-occur in one pass.
type Prediction struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Probability    float64  `json:"probability"` // 0..1
	Details        string   `json:"details"`
	EmergencyLevel string   `json:"emergency_level"`
	ActionRequired string   `json:"action_required"`
}

// PredictDisasters evaluates every disaster rule against the conditions and
// returns the predictions that fire, in fixed rule order. The order is stable
// so fixture-based tests stay deterministic.
func PredictDisasters(c WeatherConditions, risk FloodRisk, table *LocationTable) []Prediction {
	var predictions []Prediction

	if p, ok := predictFlashFlood(c, risk); ok {
		predictions = append(predictions, p)
	}
	if p, ok := predictCyclone(c); ok {
		predictions = append(predictions, p)
	}
	if c.TemperatureC > 40 {
		predictions = append(predictions, predictHeatWave(c))
	}
	if c.TemperatureC < 5 {
		predictions = append(predictions, Prediction{
			Type:           "Cold Wave",
			Severity:       SeverityHigh,
			Probability:    0.8,
			Details:        fmt.Sprintf("Temperature %.1f°C with wind chill %.1f°C.", c.TemperatureC, WindChill(c.TemperatureC, c.WindSpeedKmh)),
			EmergencyLevel: "SEVERE COLD",
			ActionRequired: "Stay indoors, protect the homeless and livestock",
		})
	}
	if p, ok := predictLandslide(c, table); ok {
		predictions = append(predictions, p)
	}
	if c.CloudPct > 75 && c.WindSpeedKmh > 20 {
		predictions = append(predictions, Prediction{
			Type:           "Thunderstorm",
			Severity:       SeverityModerate,
			Probability:    0.65,
			Details:        fmt.Sprintf("Cloud cover %.0f%% with winds of %.0f km/h.", c.CloudPct, c.WindSpeedKmh),
			EmergencyLevel: "WATCH",
			ActionRequired: "Unplug electronics, avoid open ground",
		})
	}
	if c.VisibilityM < 1000 && c.HumidityPct > 90 {
		predictions = append(predictions, Prediction{
			Type:           "Dense Fog",
			Severity:       SeverityModerate,
			Probability:    0.7,
			Details:        fmt.Sprintf("Visibility down to %.0f m at %.0f%% humidity.", c.VisibilityM, c.HumidityPct),
			EmergencyLevel: "ADVISORY",
			ActionRequired: "Avoid driving, use fog lamps if travel is essential",
		})
	}
	if c.HumidityPct < 30 && c.TemperatureC > 35 {
		predictions = append(predictions, Prediction{
			Type:           "Drought",
			Severity:       SeverityModerate,
			Probability:    0.6,
			Details:        fmt.Sprintf("Hot dry spell: %.1f°C at %.0f%% humidity.", c.TemperatureC, c.HumidityPct),
			EmergencyLevel: "WATCH",
			ActionRequired: "Conserve water, monitor crop stress",
		})
	}

	return predictions
}

func predictFlashFlood(c WeatherConditions, risk FloodRisk) (Prediction, bool) {
	var (
		probability float64
		severity    Severity
		level       string
	)
	switch risk.Level {
	case FloodRiskExtreme:
		probability, severity, level = 0.95, SeverityHigh, "EXTREME"
	case FloodRiskHigh:
		probability, severity, level = 0.85, SeverityHigh, "HIGH"
	case FloodRiskModerate:
		probability, severity, level = 0.65, SeverityModerate, "MODERATE"
	default:
		return Prediction{}, false
	}
	return Prediction{
		Type:           "Flash Flood",
		Severity:       severity,
		Probability:    probability,
		Details:        fmt.Sprintf("Flood risk score %d with rainfall at %.1f mm/h.", risk.Score, c.RainMmPerHour),
		EmergencyLevel: level,
		ActionRequired: "Move to higher ground, avoid underpasses and riverbanks",
	}, true
}

func predictCyclone(c WeatherConditions) (Prediction, bool) {
	if c.RainMmPerHour <= 30 || c.WindSpeedKmh <= 25 {
		return Prediction{}, false
	}

	var (
		intensity   string
		probability float64
		severity    Severity
	)
	switch {
	case c.WindSpeedKmh >= 120:
		intensity, probability, severity = "SUPER CYCLONE", 0.9, SeverityHigh
	case c.WindSpeedKmh >= 90:
		intensity, probability, severity = "VERY SEVERE CYCLONIC STORM", 0.8, SeverityHigh
	case c.WindSpeedKmh >= 60:
		intensity, probability, severity = "SEVERE CYCLONIC STORM", 0.7, SeverityHigh
	default:
		intensity, probability, severity = "CYCLONIC STORM", 0.6, SeverityModerate
	}
	return Prediction{
		Type:           "Cyclone",
		Severity:       severity,
		Probability:    probability,
		Details:        fmt.Sprintf("Sustained winds of %.0f km/h with rainfall at %.1f mm/h.", c.WindSpeedKmh, c.RainMmPerHour),
		EmergencyLevel: intensity,
		ActionRequired: "Secure loose objects, follow evacuation orders",
	}, true
}

func predictHeatWave(c WeatherConditions) Prediction {
	severity := SeverityModerate
	probability := 0.7
	level := "HEAT ADVISORY"
	if c.TemperatureC > 45 {
		severity, probability, level = SeverityHigh, 0.9, "EXTREME HEAT"
	}
	return Prediction{
		Type:           "Heat Wave",
		Severity:       severity,
		Probability:    probability,
		Details:        fmt.Sprintf("Temperature %.1f°C, heat index %.1f°C.", c.TemperatureC, HeatIndex(c.TemperatureC, c.HumidityPct)),
		EmergencyLevel: level,
		ActionRequired: "Stay hydrated, avoid outdoor work at midday",
	}
}

func predictLandslide(c WeatherConditions, table *LocationTable) (Prediction, bool) {
	if c.RainMmPerHour <= 25 || !table.IsHillStation(c.LocationKey) {
		return Prediction{}, false
	}

	var (
		level       string
		probability float64
		severity    Severity
	)
	switch {
	case c.RainMmPerHour > 60:
		level, probability, severity = "EXTREME", 0.9, SeverityHigh
	case c.RainMmPerHour > 40:
		level, probability, severity = "HIGH", 0.75, SeverityHigh
	default:
		level, probability, severity = "MODERATE", 0.6, SeverityModerate
	}
	return Prediction{
		Type:           "Landslide",
		Severity:       severity,
		Probability:    probability,
		Details:        fmt.Sprintf("Sustained rainfall of %.1f mm/h over hill terrain.", c.RainMmPerHour),
		EmergencyLevel: level,
		ActionRequired: "Avoid slopes and road cuttings, watch for ground cracks",
	}, true
}
