package loader

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/field-allocator/internal/model"
)

// zoneFile is the YAML zone document. Vertices are [lon, lat] pairs.
type zoneFile struct {
	Zones []struct {
		ID       string      `yaml:"id"`
		Vertices [][]float64 `yaml:"vertices"`
	} `yaml:"zones"`
}

// ZonesYAML reads zones from a YAML document.
func ZonesYAML(path string) ([]model.Zone, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "loader: read zone yaml")
	}
	return ParseZonesYAML(data)
}

// ParseZonesYAML decodes a YAML zone document.
func ParseZonesYAML(data []byte) ([]model.Zone, []error, error) {
	var doc zoneFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, eris.Wrap(err, "loader: parse zone yaml")
	}

	var (
		zones []model.Zone
		errs  []error
	)
	for i, zy := range doc.Zones {
		z := model.Zone{ID: zy.ID}
		var bad *model.InputError
		for j, v := range zy.Vertices {
			if len(v) != 2 {
				bad = &model.InputError{Source: "zones", Row: i + 1, ID: zy.ID, Field: fmt.Sprintf("vertices[%d]", j),
					Reason: "vertex must be [lon, lat]"}
				break
			}
			c := model.Coordinate{Lat: v[1], Lon: v[0]}
			if err := c.Validate(); err != nil {
				bad = &model.InputError{Source: "zones", Row: i + 1, ID: zy.ID, Field: fmt.Sprintf("vertices[%d]", j),
					Reason: err.Error()}
				break
			}
			z.Vertices = append(z.Vertices, c)
		}
		if bad == nil {
			bad = checkZone(i+1, z)
		}
		if bad != nil {
			errs = append(errs, bad)
			continue
		}
		zones = append(zones, z)
	}
	logSkipped("zones", errs)
	return zones, errs, nil
}
