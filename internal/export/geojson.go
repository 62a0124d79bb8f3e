package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/field-allocator/internal/geo"
	"github.com/sells-group/field-allocator/internal/model"
)

// Feature kinds written to the "kind" property.
const (
	KindZone       = "zone"
	KindSite       = "site"
	KindOfficer    = "officer"
	KindMove       = "move"
	KindUnassigned = "unassigned"
)

// Layers is everything a GeoJSON export can contain. Empty layers are
// omitted.
type Layers struct {
	Zones       []model.Zone
	Assignments []model.Assignment
	Unassigned  []model.Site
	Officers    []model.Officer
}

// FeatureCollection builds the GeoJSON collection. Zones become Polygons,
// sites and final officer positions become Points, and each assignment adds
// a LineString from the officer's previous position to the site. Zones that
// fail to build are skipped.
func FeatureCollection(l Layers) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}

	for _, z := range l.Zones {
		poly, err := geo.NewPolygon(z.Vertices)
		if err != nil {
			zap.L().Warn("export: skipping zone", zap.String("zone", z.ID), zap.Error(err))
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         "zone:" + z.ID,
			Geometry:   poly,
			Properties: map[string]interface{}{"kind": KindZone, "zone": z.ID},
		})
	}

	for _, a := range l.Assignments {
		fc.Features = append(fc.Features,
			&geojson.Feature{
				ID:       "site:" + a.RequestID,
				Geometry: point(a.SiteLocation()),
				Properties: map[string]interface{}{
					"kind":          KindSite,
					"request_id":    a.RequestID,
					"customer_name": a.CustomerName,
					"officer_id":    a.OfficerID,
					"officer_name":  a.OfficerName,
					"score":         a.Score,
					"distance_km":   a.DistanceKM,
					"zone_relation": a.ZoneRelation,
				},
			},
			&geojson.Feature{
				ID:       "move:" + a.RequestID,
				Geometry: line(a.OfficerLocation, a.SiteLocation()),
				Properties: map[string]interface{}{
					"kind":       KindMove,
					"request_id": a.RequestID,
					"officer_id": a.OfficerID,
				},
			},
		)
	}

	for _, s := range l.Unassigned {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "site:" + s.RequestID,
			Geometry: point(s.Location),
			Properties: map[string]interface{}{
				"kind":          KindUnassigned,
				"request_id":    s.RequestID,
				"customer_name": s.CustomerName,
			},
		})
	}

	for _, o := range l.Officers {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "officer:" + o.ID,
			Geometry: point(o.Location),
			Properties: map[string]interface{}{
				"kind":   KindOfficer,
				"id":     o.ID,
				"name":   o.Name,
				"active": o.Active,
			},
		})
	}
	return fc
}

// EncodeGeoJSON writes the collection for l to w.
func EncodeGeoJSON(w io.Writer, l Layers) error {
	data, err := json.Marshal(FeatureCollection(l))
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

// WriteGeoJSON writes the collection for l to path.
func WriteGeoJSON(path string, l Layers) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeGeoJSON(w, l)
	})
}

func point(c model.Coordinate) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Lon, c.Lat})
}

func line(from, to model.Coordinate) *geom.LineString {
	return geom.NewLineStringFlat(geom.XY, []float64{from.Lon, from.Lat, to.Lon, to.Lat})
}
