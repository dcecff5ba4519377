package domain

import "math"

// ConditionAnalysis is the Severity Analyzer's verdict for one location.
type ConditionAnalysis struct {
	Warnings []string
	Severity Severity
}

// AnalyzeConditions applies the severity threshold ladder to current
// conditions. All rules are evaluated; severity only escalates within one
// call and is never downgraded once a higher rule has fired.
func AnalyzeConditions(c WeatherConditions) ConditionAnalysis {
	var warnings []string
	severity := SeverityLow

	raise := func(to Severity) {
		severity = MaxSeverity(severity, to)
	}
	warn := func(msg string, floor Severity) {
		warnings = append(warnings, msg)
		raise(floor)
	}

	// Rainfall ladder. Rates are mm/h.
	switch {
	case c.RainMmPerHour > 75:
		warn("FLASH FLOOD EMERGENCY - Immediate Evacuation of low-lying areas required", SeverityHigh)
	case c.RainMmPerHour > 50:
		warn("Flash Flood Warning - Severe waterlogging expected, avoid travel", SeverityHigh)
	case c.RainMmPerHour > 25:
		warn("Heavy Rain Alert - Flooding possible in low-lying areas", SeverityModerate)
	case c.RainMmPerHour > 10:
		warn("Moderate to Heavy Rain - Watch for waterlogging", SeverityModerate)
	}

	// Compound rainfall conditions. These stack on top of the ladder.
	if c.RainMmPerHour > 20 && c.HumidityPct > 85 {
		warn("Sustained Heavy Rainfall - Flash flood conditions developing", SeverityModerate)
	}
	if c.RainMmPerHour > 15 && c.PressureHpa < 1000 {
		warn("Low Pressure System - Heavy rainfall likely to intensify", SeverityModerate)
	}
	if c.RainMmPerHour > 20 && c.WindSpeedKmh > 50 {
		warn("Severe Thunderstorm - Flash flooding and wind damage likely", SeverityHigh)
	}

	// Temperature extremes.
	switch {
	case c.TemperatureC >= 45:
		warn("Extreme Heat Wave - Avoid outdoor activity, heat stroke risk", SeverityHigh)
	case c.TemperatureC >= 40:
		warn("Heat Advisory - Stay hydrated and limit sun exposure", SeverityModerate)
	}
	switch {
	case c.TemperatureC <= 5:
		warn("Extreme Cold Wave - Risk of frostbite and hypothermia", SeverityHigh)
	case c.TemperatureC <= 10:
		warn("Cold Advisory - Dress in layers, protect the vulnerable", SeverityModerate)
	}

	// Visibility hazards.
	if c.VisibilityM < 1000 && c.WindSpeedKmh > 30 {
		warn("Dust Storm Warning - Near-zero visibility, avoid travel", SeverityHigh)
	}
	if c.VisibilityM < 500 && c.HumidityPct > 95 && c.RainMmPerHour > 5 {
		warn("Dense Fog with Rain - Hazardous driving conditions", SeverityModerate)
	}

	// Derived indices.
	switch hi := HeatIndex(c.TemperatureC, c.HumidityPct); {
	case hi > 54:
		warn("Dangerous Heat Index - Heat stroke imminent without shelter", SeverityHigh)
	case hi > 41:
		warn("High Heat Index - Heat exhaustion likely with exertion", SeverityModerate)
	}
	if WindChill(c.TemperatureC, c.WindSpeedKmh) < -27 {
		warn("Severe Wind Chill - Exposed skin freezes within minutes", SeverityHigh)
	}

	return ConditionAnalysis{Warnings: warnings, Severity: severity}
}

// HeatIndex computes the apparent temperature in °C from air temperature and
// relative humidity using the Rothfusz regression. The regression is only
// valid for warm, humid air; below 27°C it returns the temperature unchanged
// rather than extrapolate.
func HeatIndex(tempC, humidityPct float64) float64 {
	if tempC < 27 {
		return tempC
	}

	t := tempC*9/5 + 32 // Rothfusz works in Fahrenheit
	rh := humidityPct

	hi := -42.379 +
		2.04901523*t +
		10.14333127*rh -
		0.22475541*t*rh -
		0.00683783*t*t -
		0.05481717*rh*rh +
		0.00122874*t*t*rh +
		0.00085282*t*rh*rh -
		0.00000199*t*t*rh*rh

	return (hi - 32) * 5 / 9
}

// WindChill computes the NWS wind chill in °C from air temperature and wind
// speed in km/h. The formula is only defined for cold, windy air; above 10°C
// or below 4.8 km/h it returns the temperature unchanged.
func WindChill(tempC, windKmh float64) float64 {
	if tempC > 10 || windKmh < 4.8 {
		return tempC
	}
	v := math.Pow(windKmh, 0.16)
	return 13.12 + 0.6215*tempC - 11.37*v + 0.3965*tempC*v
}
