package domain

import "fmt"

// AlertGroup is the set of alerts sharing one exact coordinate, with the
// group's maximum severity for overlay styling.
type AlertGroup struct {
	Coordinates Coordinates `json:"coordinates"`
	MaxSeverity Severity    `json:"max_severity"`
	Alerts      []Alert     `json:"alerts"`
}

// GroupKey renders a coordinate as the grouping key.
func GroupKey(c Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// GroupAlerts groups alerts by exact coordinate. Grouping is order
// independent and loses nothing: flattening the groups yields the same
// multiset of alerts that went in.
func GroupAlerts(alerts []Alert) map[string]AlertGroup {
	groups := make(map[string]AlertGroup)
	for _, a := range alerts {
		key := GroupKey(a.Coordinates)
		g, ok := groups[key]
		if !ok {
			g = AlertGroup{Coordinates: a.Coordinates, MaxSeverity: a.Severity}
		}
		g.Alerts = append(g.Alerts, a)
		g.MaxSeverity = MaxSeverity(g.MaxSeverity, a.Severity)
		groups[key] = g
	}
	return groups
}
