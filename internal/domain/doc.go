// Package domain models disaster-alert data and the pure decision logic that
// turns normalized weather observations into ranked alerts.
//
// # Pipeline
//
// A normalizer (see the adapter packages) converts provider payloads into
// [WeatherConditions]. From there the pass is a chain of pure functions:
//
//	AnalyzeConditions  threshold ladder producing warnings and an overall severity
//	ScoreFloodRisk     additive point model producing FloodRisk{level, score, factors}
//	ScanForecast       3-hour buckets (48h horizon) classified into forecast hazards
//	PredictDisasters   typed predictions (flood, cyclone, heat, cold, more)
//	AssembleAlerts     folds everything into []Alert for one location
//	GroupAlerts        display grouping by exact coordinate
//
// Seismic and landslide feeds skip the weather stages and map straight into
// the [Alert] shape before fan-in.
//
// # Conventions
//
// Units are metric throughout: °C, km/h (provider m/s multiplied by 3.6),
// mm/h rainfall, hPa pressure, metres visibility. Missing optional provider
// fields normalize to 0 (or 10000 m for visibility) so comparisons never see
// nulls.
//
// Severity is a three-level scale, high > moderate > low, and only ever
// escalates within one analysis pass.
//
// The flood risk score level (ScoreFloodRisk) and the forecast scanner's
// per-bucket flood label are two independently maintained signals that may
// disagree for the same data. They are kept distinct on purpose.
//
// # Determinism
//
// Nothing in this package reads the wall clock; callers thread "now" into
// [AssembleAlerts]. Given identical inputs and timestamp, a pass produces a
// structurally identical alert list.
package domain
