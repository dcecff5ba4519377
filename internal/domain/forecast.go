package domain

import "strings"

// forecastHorizonBuckets caps scanning to the first 16 three-hour buckets,
// i.e. roughly the next 48 hours.
const forecastHorizonBuckets = 16

// ForecastWarning is one retained forecast bucket classified as a hazard.
// FloodRiskLabel is a display-only shortcut derived from the hourly rain rate
// alone; it is intentionally independent of the scored FloodRisk level.
type ForecastWarning struct {
	Bucket         ForecastBucket
	Type           string
	Severity       Severity
	RainPerHour    float64
	FloodRiskLabel FloodRiskLevel
}

// ScanForecast filters a forecast series for flash-flood and severe-weather
// candidates and classifies each retained bucket.
func ScanForecast(buckets []ForecastBucket) []ForecastWarning {
	if len(buckets) > forecastHorizonBuckets {
		buckets = buckets[:forecastHorizonBuckets]
	}

	var warnings []ForecastWarning
	for _, b := range buckets {
		if !retainBucket(b) {
			continue
		}
		warnings = append(warnings, classifyBucket(b))
	}
	return warnings
}

func retainBucket(b ForecastBucket) bool {
	rph := b.RainPerHour()
	switch {
	case rph > 20:
		return true
	case rph > 10 && b.HumidityPct > 90:
		return true
	case rph > 15 && b.PressureHpa < 1000:
		return true
	}
	return severeBucket(b)
}

func severeBucket(b ForecastBucket) bool {
	if b.TemperatureC > 40 || b.TemperatureC < 10 {
		return true
	}
	if b.WindSpeedKmh > 62 {
		return true
	}
	if b.RainPerHour() > 25 || b.PressureHpa < 980 {
		return true
	}
	desc := strings.ToLower(b.Description + " " + b.Main)
	for _, marker := range []string{"extreme", "tornado", "hurricane", "thunderstorm", "storm"} {
		if strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}

func classifyBucket(b ForecastBucket) ForecastWarning {
	rph := b.RainPerHour()
	w := ForecastWarning{
		Bucket:         b,
		RainPerHour:    rph,
		FloodRiskLabel: forecastFloodLabel(rph),
	}

	switch {
	case rph > 50:
		w.Type = "FLASH FLOOD EMERGENCY"
		w.Severity = SeverityHigh
	case rph > 25:
		w.Type = "Flash Flood Warning"
		w.Severity = SeverityHigh
	case rph > 15:
		w.Type = "Heavy Rain Alert"
		w.Severity = SeverityModerate
	case strings.Contains(strings.ToLower(b.Description+" "+b.Main), "storm"):
		w.Type = "Severe Storm Warning"
		w.Severity = SeverityHigh
	default:
		w.Type = "Weather Alert"
		w.Severity = SeverityModerate
	}
	return w
}

// forecastFloodLabel is the scanner's own coarse flood label, keyed off the
// hourly rain rate only. Do not conflate it with floodLevelForScore.
func forecastFloodLabel(rainPerHour float64) FloodRiskLevel {
	switch {
	case rainPerHour > 15:
		return FloodRiskHigh
	case rainPerHour > 10:
		return FloodRiskModerate
	default:
		return FloodRiskLow
	}
}
