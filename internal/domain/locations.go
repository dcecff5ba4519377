package domain

import "strings"

// LocationTable holds the static geography the scorer and predictor consult:
// the monitored city coordinates plus hill-station, flood-prone, and coastal
// name sets. It is built once at startup and never mutated, so concurrent
// reads from parallel fetches are safe.
type LocationTable struct {
	cities       map[string]Coordinates
	hillStations map[string]struct{}
	floodProne   map[string]struct{}
	coastal      map[string]struct{}
}

// LocationKey canonicalizes a location name for table lookups.
func LocationKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewLocationTable builds a lookup table from city coordinates and the three
// auxiliary name lists. All names are canonicalized via LocationKey.
func NewLocationTable(cities map[string]Coordinates, hillStations, floodProne, coastal []string) *LocationTable {
	t := &LocationTable{
		cities:       make(map[string]Coordinates, len(cities)),
		hillStations: toSet(hillStations),
		floodProne:   toSet(floodProne),
		coastal:      toSet(coastal),
	}
	for name, coord := range cities {
		t.cities[LocationKey(name)] = coord
	}
	return t
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[LocationKey(n)] = struct{}{}
	}
	return set
}

// City returns the coordinates for a location key, if configured.
func (t *LocationTable) City(key string) (Coordinates, bool) {
	coord, ok := t.cities[LocationKey(key)]
	return coord, ok
}

// Cities returns the configured location keys in no particular order.
func (t *LocationTable) Cities() map[string]Coordinates {
	out := make(map[string]Coordinates, len(t.cities))
	for k, v := range t.cities {
		out[k] = v
	}
	return out
}

// IsHillStation reports whether the location is in the hill-station set.
func (t *LocationTable) IsHillStation(key string) bool {
	_, ok := t.hillStations[LocationKey(key)]
	return ok
}

// IsFloodProne reports whether the location is in the flood-prone set.
func (t *LocationTable) IsFloodProne(key string) bool {
	_, ok := t.floodProne[LocationKey(key)]
	return ok
}

// IsCoastal reports whether the location is in the coastal set.
func (t *LocationTable) IsCoastal(key string) bool {
	_, ok := t.coastal[LocationKey(key)]
	return ok
}
