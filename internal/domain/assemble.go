package domain

import (
	"fmt"
	"strings"
	"time"
)

const weatherSourceName = "OpenWeather"

// AssembleAlerts builds the final alert list for one location from the
// analyzer, scanner, scorer, and predictor outputs. It returns nothing when
// every input is quiet; calm weather is silence, not an error. The caller
// supplies "now" so assembly stays deterministic under test.
func AssembleAlerts(c WeatherConditions, analysis ConditionAnalysis, risk FloodRisk, forecast []ForecastWarning, predictions []Prediction, now time.Time) []Alert {
	var alerts []Alert

	date := now.UTC().Format(time.RFC3339)

	if weather, ok := assembleWeatherAlert(c, analysis, risk, forecast, predictions, date); ok {
		alerts = append(alerts, weather)
	}
	alerts = append(alerts, assembleFloodAlerts(c, forecast, date)...)

	return alerts
}

// assembleWeatherAlert folds warnings, predictions, and forecast hazards into
// one aggregate alert with multi-line details.
func assembleWeatherAlert(c WeatherConditions, analysis ConditionAnalysis, risk FloodRisk, forecast []ForecastWarning, predictions []Prediction, date string) (Alert, bool) {
	if len(analysis.Warnings) == 0 && len(forecast) == 0 && len(predictions) == 0 {
		return Alert{}, false
	}

	severity := analysis.Severity
	for _, p := range predictions {
		severity = MaxSeverity(severity, p.Severity)
	}
	for _, w := range forecast {
		severity = MaxSeverity(severity, w.Severity)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Conditions: %s, %.1f°C, humidity %.0f%%, wind %.0f km/h\n",
		c.Description, c.TemperatureC, c.HumidityPct, c.WindSpeedKmh)

	if len(analysis.Warnings) > 0 {
		b.WriteString("\nActive warnings:\n")
		for _, w := range analysis.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if len(predictions) > 0 {
		b.WriteString("\nLocal predictions:\n")
		for _, p := range predictions {
			fmt.Fprintf(&b, "- %s [%s]: %.0f%% likely. %s\n", p.Type, p.EmergencyLevel, p.Probability*100, p.ActionRequired)
		}
	}

	if len(forecast) > 0 {
		b.WriteString("\nForecast hazards (next 48h):\n")
		for _, w := range forecast {
			fmt.Fprintf(&b, "- %s: %s, rain %.1f mm/h (flood risk %s)\n",
				w.Bucket.TimeText, w.Type, w.RainPerHour, w.FloodRiskLabel)
		}
	}

	if c.RainMmPerHour > 10 {
		fmt.Fprintf(&b, "\nFlood risk: %s (score %d)\n", risk.Level, risk.Score)
		for _, f := range risk.Factors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	return Alert{
		Title:       fmt.Sprintf("Weather Alert - %s", c.LocationName),
		Type:        "Weather",
		Severity:    severity,
		Date:        date,
		Details:     strings.TrimRight(b.String(), "\n"),
		Source:      weatherSourceName,
		Coordinates: c.Coordinates,
	}, true
}

// assembleFloodAlerts emits the dedicated flash-flood alerts: one for current
// conditions when rain exceeds 25 mm/h, and one for the worst forecast bucket
// when any bucket exceeds 20 mm/h.
func assembleFloodAlerts(c WeatherConditions, forecast []ForecastWarning, date string) []Alert {
	var alerts []Alert

	if c.RainMmPerHour > 25 {
		title := fmt.Sprintf("Flash Flood Warning - %s (Current Conditions)", c.LocationName)
		if c.RainMmPerHour > 75 {
			title = fmt.Sprintf("FLASH FLOOD EMERGENCY - %s (Current Conditions)", c.LocationName)
		}
		alerts = append(alerts, Alert{
			Title:    title,
			Type:     "Flash Flood",
			Severity: SeverityHigh,
			Date:     date,
			Details: fmt.Sprintf("Rainfall at %.1f mm/h right now.\nMove vehicles and valuables to higher ground.\nDo not enter flooded underpasses.",
				c.RainMmPerHour),
			Source:      weatherSourceName,
			Coordinates: c.Coordinates,
		})
	}

	if worst, ok := worstForecastBucket(forecast); ok {
		alerts = append(alerts, Alert{
			Title:    fmt.Sprintf("Flash Flood Warning - %s (Forecast)", c.LocationName),
			Type:     "Flash Flood",
			Severity: SeverityHigh,
			Date:     date,
			Details: fmt.Sprintf("%s expected around %s.\nForecast rainfall up to %.1f mm/h.\nPrepare to move to higher ground.",
				worst.Type, worst.Bucket.TimeText, worst.RainPerHour),
			Source:      weatherSourceName,
			Coordinates: c.Coordinates,
		})
	}

	return alerts
}

// worstForecastBucket picks the single heaviest bucket above the 20 mm/h
// forecast flood threshold.
func worstForecastBucket(forecast []ForecastWarning) (ForecastWarning, bool) {
	var worst ForecastWarning
	found := false
	for _, w := range forecast {
		if w.RainPerHour <= 20 {
			continue
		}
		if !found || w.RainPerHour > worst.RainPerHour {
			worst = w
			found = true
		}
	}
	return worst, found
}
