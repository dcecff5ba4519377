package domain

import "time"

// WeatherConditions is the canonical current-weather record produced by a
// normalizer. It is constructed fresh per fetch cycle and never mutated after
// construction. HumidityPct and CloudPct are percentages in [0,100]; the
// remaining fields are unbounded sensor data.
type WeatherConditions struct {
	LocationKey   string      `json:"location_key"`
	LocationName  string      `json:"location_name"`
	Coordinates   Coordinates `json:"coordinates"`
	TemperatureC  float64     `json:"temperature_c"`
	HumidityPct   float64     `json:"humidity_pct"`
	WindSpeedKmh  float64     `json:"wind_speed_kmh"`
	RainMmPerHour float64     `json:"rain_mm_per_hour"`
	PressureHpa   float64     `json:"pressure_hpa"`
	VisibilityM   float64     `json:"visibility_m"`
	CloudPct      float64     `json:"cloud_pct"`
	Description   string      `json:"description"`
}

// ForecastBucket is one 3-hour slot of a provider forecast series.
type ForecastBucket struct {
	Time         time.Time
	TimeText     string
	TemperatureC float64
	HumidityPct  float64
	PressureHpa  float64
	WindSpeedKmh float64
	Rain3hMm     float64
	CloudPct     float64
	Main         string
	Description  string
}

// RainPerHour converts the bucket's 3-hour accumulation to an hourly rate.
func (b ForecastBucket) RainPerHour() float64 {
	return b.Rain3hMm / 3
}
