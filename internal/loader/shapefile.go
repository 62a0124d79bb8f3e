package loader

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/model"
)

var shapeIDFields = []string{"zone", "zone_id", "id", "name"}

// ZonesShapefile reads polygon zones from an ESRI shapefile. The zone id
// comes from the first of ZONE, ZONE_ID, ID or NAME present. Only the first
// ring of each polygon is used.
func ZonesShapefile(path string) ([]model.Zone, []error, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "loader: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	idIdx := -1
	for _, want := range shapeIDFields {
		if idIdx = fieldIndex(reader, want); idIdx >= 0 {
			break
		}
	}
	if idIdx < 0 {
		return nil, nil, eris.New("loader: shapefile has no ZONE, ZONE_ID, ID or NAME field")
	}

	var (
		zones []model.Zone
		errs  []error
		row   int
	)
	for reader.Next() {
		row++
		_, shape := reader.Shape()
		id := strings.TrimSpace(strings.TrimRight(reader.Attribute(idIdx), "\x00"))

		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			errs = append(errs, &model.InputError{Source: "zones", Row: row, ID: id, Field: "geometry", Reason: "shape is not a polygon"})
			continue
		}
		z := model.Zone{ID: id, Vertices: firstRing(poly)}
		if e := checkZone(row, z); e != nil {
			errs = append(errs, e)
			continue
		}
		zones = append(zones, z)
	}
	logSkipped("zones", errs)
	return zones, errs, nil
}

// firstRing returns the first part of a shapefile polygon as coordinates.
func firstRing(p *shp.Polygon) []model.Coordinate {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}
	end := int32(len(p.Points))
	if p.NumParts > 1 {
		end = p.Parts[1]
	}
	coords := make([]model.Coordinate, 0, end-p.Parts[0])
	for _, pt := range p.Points[p.Parts[0]:end] {
		coords = append(coords, model.Coordinate{Lat: pt.Y, Lon: pt.X})
	}
	return coords
}

// fieldIndex returns the index of a named field in the shapefile, or -1 if not found.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
