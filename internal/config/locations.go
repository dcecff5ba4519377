package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed locations.yaml
var defaultLocationsYAML []byte

// locationsFile mirrors the YAML layout of the location tables.
type locationsFile struct {
	Cities map[string]struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"cities"`
	HillStations []string `yaml:"hill_stations"`
	FloodProne   []string `yaml:"flood_prone"`
	Coastal      []string `yaml:"coastal"`
}

// LoadLocationTable builds the static location tables from a YAML file, or
// from the embedded India defaults when path is empty.
func LoadLocationTable(path string) (*domain.LocationTable, error) {
	data := defaultLocationsYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read locations file: %w", err)
		}
	}

	var file locationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}
	if len(file.Cities) == 0 {
		return nil, fmt.Errorf("locations file defines no cities")
	}

	cities := make(map[string]domain.Coordinates, len(file.Cities))
	for name, c := range file.Cities {
		cities[name] = domain.Coordinates{Lat: c.Lat, Lon: c.Lon}
	}
	return domain.NewLocationTable(cities, file.HillStations, file.FloodProne, file.Coastal), nil
}
