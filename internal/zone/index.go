// Package zone resolves which zone, if any, contains a coordinate.
package zone

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/field-allocator/internal/geo"
	"github.com/sells-group/field-allocator/internal/model"
)

type entry struct {
	id   string
	poly *geom.Polygon
}

// Index is an immutable, ordered set of zone polygons. Lookups return the
// first zone in input order that contains or touches the point, so input
// order is the priority for overlapping zones.
type Index struct {
	zones []entry
}

// New builds an Index. Zones whose polygon cannot be built are skipped and
// reported as *model.InputError.
func New(zones []model.Zone) (*Index, []error) {
	idx := &Index{zones: make([]entry, 0, len(zones))}
	var errs []error
	for i, z := range zones {
		poly, err := geo.NewPolygon(z.Vertices)
		if err != nil {
			errs = append(errs, &model.InputError{
				Source: "zones",
				Row:    i + 1,
				ID:     z.ID,
				Field:  "polygon",
				Reason: err.Error(),
			})
			zap.L().Warn("zone: skipping invalid zone",
				zap.String("zone_id", z.ID),
				zap.Error(err),
			)
			continue
		}
		idx.zones = append(idx.zones, entry{id: z.ID, poly: poly})
	}
	return idx, errs
}

// Len returns the number of zones in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.zones)
}

// IDs returns zone identifiers in priority order.
func (idx *Index) IDs() []string {
	if idx == nil {
		return nil
	}
	ids := make([]string, len(idx.zones))
	for i, z := range idx.zones {
		ids[i] = z.id
	}
	return ids
}

// Locate returns the first zone containing or touching c. ok is false when
// no zone does; that is an expected outcome, not an error.
func (idx *Index) Locate(c model.Coordinate) (id string, poly *geom.Polygon, ok bool) {
	if idx == nil {
		return "", nil, false
	}
	for _, z := range idx.zones {
		if geo.ContainsOrTouches(z.poly, c) {
			return z.id, z.poly, true
		}
	}
	return "", nil, false
}

// Polygon returns the polygon for a zone id.
func (idx *Index) Polygon(id string) (*geom.Polygon, bool) {
	if idx == nil {
		return nil, false
	}
	for _, z := range idx.zones {
		if z.id == id {
			return z.poly, true
		}
	}
	return nil, false
}
