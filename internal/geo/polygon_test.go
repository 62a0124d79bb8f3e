package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/field-allocator/internal/model"
)

// square returns the (lon,lat) square [0,10]x[0,10] as lat/lon vertices.
func square(t *testing.T) []model.Coordinate {
	t.Helper()
	return []model.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 10, Lon: 0},
		{Lat: 10, Lon: 10},
		{Lat: 0, Lon: 10},
	}
}

func TestNewPolygon(t *testing.T) {
	poly, err := NewPolygon(square(t))
	require.NoError(t, err)
	require.Equal(t, 1, poly.NumLinearRings())

	ring := poly.LinearRing(0)
	assert.Equal(t, 5, ring.NumCoords(), "ring should be closed")
	assert.Equal(t, ring.Coord(0), ring.Coord(4))
}

func TestNewPolygon_AlreadyClosedAndDuplicates(t *testing.T) {
	verts := []model.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0},
		{Lat: 10, Lon: 0},
		{Lat: 10, Lon: 10},
		{Lat: 0, Lon: 0},
	}
	poly, err := NewPolygon(verts)
	require.NoError(t, err)
	assert.Equal(t, 4, poly.LinearRing(0).NumCoords())
}

func TestNewPolygon_TooFewVertices(t *testing.T) {
	_, err := NewPolygon([]model.Coordinate{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 distinct vertices")
}

func TestNewPolygon_InvalidVertex(t *testing.T) {
	_, err := NewPolygon([]model.Coordinate{{Lat: 0, Lon: 0}, {Lat: 95, Lon: 1}, {Lat: 1, Lon: 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}

func TestContainsOrTouches(t *testing.T) {
	poly, err := NewPolygon(square(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		pt   model.Coordinate
		want bool
	}{
		{"strictly inside", model.Coordinate{Lat: 5, Lon: 5}, true},
		{"near corner inside", model.Coordinate{Lat: 0.001, Lon: 0.001}, true},
		{"edge midpoint bottom", model.Coordinate{Lat: 0, Lon: 5}, true},
		{"edge midpoint right", model.Coordinate{Lat: 5, Lon: 10}, true},
		{"vertex", model.Coordinate{Lat: 10, Lon: 10}, true},
		{"epsilon outside", model.Coordinate{Lat: 5, Lon: 10.000001}, false},
		{"epsilon below", model.Coordinate{Lat: -0.000001, Lon: 5}, false},
		{"far away", model.Coordinate{Lat: 50, Lon: 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsOrTouches(poly, tt.pt))
		})
	}
}

func TestContainsOrTouches_Concave(t *testing.T) {
	// L-shaped zone: the notch at (lon 7, lat 7) is outside.
	poly, err := NewPolygon([]model.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 10},
		{Lat: 5, Lon: 10},
		{Lat: 5, Lon: 5},
		{Lat: 10, Lon: 5},
		{Lat: 10, Lon: 0},
	})
	require.NoError(t, err)

	assert.True(t, ContainsOrTouches(poly, model.Coordinate{Lat: 2, Lon: 8}))
	assert.True(t, ContainsOrTouches(poly, model.Coordinate{Lat: 8, Lon: 2}))
	assert.False(t, ContainsOrTouches(poly, model.Coordinate{Lat: 7, Lon: 7}))
	assert.True(t, ContainsOrTouches(poly, model.Coordinate{Lat: 5, Lon: 7}), "inner edge")
}

func TestContainsOrTouches_Nil(t *testing.T) {
	assert.False(t, ContainsOrTouches(nil, model.Coordinate{}))
}
