package geo

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/field-allocator/internal/model"
)

// earthRadiusKM is the IUGG mean Earth radius.
const earthRadiusKM = 6371.0088

// DistanceKM returns the great-circle distance between a and b.
func DistanceKM(a, b model.Coordinate) float64 {
	if a == b {
		return 0
	}
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	h = math.Min(1, h)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// DistanceToBoundaryKM approximates the distance travelled after leaving
// poly to reach c. It is zero when c is inside or on poly. Otherwise the
// nearest point on the exterior ring is found in planar lon/lat space and
// the great-circle distance from there to c is returned. This is not a
// least-cost path.
func DistanceToBoundaryKM(poly *geom.Polygon, c model.Coordinate) float64 {
	if poly == nil || poly.NumLinearRings() == 0 {
		return 0
	}
	if ContainsOrTouches(poly, c) {
		return 0
	}
	return DistanceKM(NearestBoundaryPoint(poly, c), c)
}

// NearestBoundaryPoint projects c onto the exterior ring of poly using
// planar lon/lat geometry. When two edges are equally close the one that
// comes first along the ring wins.
func NearestBoundaryPoint(poly *geom.Polygon, c model.Coordinate) model.Coordinate {
	ring := poly.LinearRing(0)
	n := ring.NumCoords()
	x, y := c.Lon, c.Lat

	best := model.Coordinate{}
	bestD2 := math.Inf(1)
	for i := 0; i+1 < n; i++ {
		a, b := ring.Coord(i), ring.Coord(i+1)
		px, py := projectOnSegment(x, y, a, b)
		d2 := (px-x)*(px-x) + (py-y)*(py-y)
		if d2 < bestD2 {
			bestD2 = d2
			best = model.Coordinate{Lat: py, Lon: px}
		}
	}
	return best
}

func projectOnSegment(x, y float64, a, b geom.Coord) (float64, float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a[0], a[1]
	}
	t := ((x-a[0])*dx + (y-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return a[0] + t*dx, a[1] + t*dy
}
