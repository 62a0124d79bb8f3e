// Package geo provides the planar and geodesic primitives used for zone
// containment and officer-to-site distances.
package geo

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/field-allocator/internal/model"
)

// edgeTolerance is the distance in degrees within which a point counts as
// lying on a polygon edge.
const edgeTolerance = 1e-9

// NewPolygon builds a single-ring polygon from (lat, lon) vertices. The ring
// is closed automatically and consecutive duplicate vertices are dropped.
func NewPolygon(vertices []model.Coordinate) (*geom.Polygon, error) {
	ring := make([]geom.Coord, 0, len(vertices)+1)
	for _, v := range vertices {
		if err := v.Validate(); err != nil {
			return nil, eris.Wrapf(err, "geo: vertex %d", len(ring)+1)
		}
		c := geom.Coord{v.Lon, v.Lat}
		if n := len(ring); n > 0 && sameCoord(ring[n-1], c) {
			continue
		}
		ring = append(ring, c)
	}
	if n := len(ring); n > 1 && sameCoord(ring[0], ring[n-1]) {
		ring = ring[:n-1]
	}
	if len(ring) < 3 {
		return nil, eris.Errorf("geo: polygon needs at least 3 distinct vertices, got %d", len(ring))
	}
	ring = append(ring, ring[0])

	poly, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring})
	if err != nil {
		return nil, eris.Wrap(err, "geo: build polygon")
	}
	return poly, nil
}

// ContainsOrTouches reports whether c lies inside poly or on its boundary.
// Only the exterior ring is considered.
func ContainsOrTouches(poly *geom.Polygon, c model.Coordinate) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}
	b := poly.Bounds()
	x, y := c.Lon, c.Lat
	if x < b.Min(0)-edgeTolerance || x > b.Max(0)+edgeTolerance ||
		y < b.Min(1)-edgeTolerance || y > b.Max(1)+edgeTolerance {
		return false
	}

	ring := poly.LinearRing(0)
	n := ring.NumCoords()
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, bb := ring.Coord(j), ring.Coord(i)
		if onSegment(x, y, a, bb) {
			return true
		}
		xi, yi := bb[0], bb[1]
		xj, yj := a[0], a[1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// onSegment reports whether (x, y) lies on the segment a-b within edgeTolerance.
func onSegment(x, y float64, a, b geom.Coord) bool {
	if x < math.Min(a[0], b[0])-edgeTolerance || x > math.Max(a[0], b[0])+edgeTolerance ||
		y < math.Min(a[1], b[1])-edgeTolerance || y > math.Max(a[1], b[1])+edgeTolerance {
		return false
	}
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(x-a[0], y-a[1]) <= edgeTolerance
	}
	cross := (x-a[0])*dy - (y-a[1])*dx
	return math.Abs(cross)/length <= edgeTolerance
}

func sameCoord(a, b geom.Coord) bool {
	return a[0] == b[0] && a[1] == b[1]
}
