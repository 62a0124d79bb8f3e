package zone

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/field-allocator/internal/model"
)

func rect(id string, minLon, minLat, maxLon, maxLat float64) model.Zone {
	return model.Zone{
		ID: id,
		Vertices: []model.Coordinate{
			{Lat: minLat, Lon: minLon},
			{Lat: maxLat, Lon: minLon},
			{Lat: maxLat, Lon: maxLon},
			{Lat: minLat, Lon: maxLon},
		},
	}
}

func TestLocate(t *testing.T) {
	idx, errs := New([]model.Zone{
		rect("Z1", 0, 0, 10, 10),
		rect("Z2", 10, 0, 20, 10),
	})
	require.Empty(t, errs)
	require.Equal(t, 2, idx.Len())

	id, poly, ok := idx.Locate(model.Coordinate{Lat: 5, Lon: 15})
	assert.True(t, ok)
	assert.Equal(t, "Z2", id)
	assert.NotNil(t, poly)

	id, poly, ok = idx.Locate(model.Coordinate{Lat: 50, Lon: 50})
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Nil(t, poly)
}

func TestLocate_SharedEdgeFirstMatchWins(t *testing.T) {
	idx, _ := New([]model.Zone{
		rect("Z1", 0, 0, 10, 10),
		rect("Z2", 10, 0, 20, 10),
	})

	id, _, ok := idx.Locate(model.Coordinate{Lat: 5, Lon: 10})
	require.True(t, ok)
	assert.Equal(t, "Z1", id)
}

func TestLocate_OverlapResolvedByInputOrder(t *testing.T) {
	idx, _ := New([]model.Zone{
		rect("outer", 0, 0, 10, 10),
		rect("inner", 2, 2, 4, 4),
	})
	id, _, _ := idx.Locate(model.Coordinate{Lat: 3, Lon: 3})
	assert.Equal(t, "outer", id)

	reversed, _ := New([]model.Zone{
		rect("inner", 2, 2, 4, 4),
		rect("outer", 0, 0, 10, 10),
	})
	id, _, _ = reversed.Locate(model.Coordinate{Lat: 3, Lon: 3})
	assert.Equal(t, "inner", id)
}

func TestLocate_Idempotent(t *testing.T) {
	idx, _ := New([]model.Zone{
		rect("A", 0, 0, 5, 5),
		rect("B", 0, 0, 5, 5),
	})
	pt := model.Coordinate{Lat: 1, Lon: 1}
	for range 50 {
		id, _, ok := idx.Locate(pt)
		require.True(t, ok)
		require.Equal(t, "A", id)
	}
}

func TestNew_SkipsInvalidZones(t *testing.T) {
	idx, errs := New([]model.Zone{
		{ID: "bad", Vertices: []model.Coordinate{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}},
		rect("good", 0, 0, 1, 1),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"good"}, idx.IDs())

	var inErr *model.InputError
	require.True(t, errors.As(errs[0], &inErr))
	assert.Equal(t, "zones", inErr.Source)
	assert.Equal(t, 1, inErr.Row)
	assert.Equal(t, "bad", inErr.ID)
}

func TestPolygon(t *testing.T) {
	idx, _ := New([]model.Zone{rect("Z1", 0, 0, 1, 1)})

	poly, ok := idx.Polygon("Z1")
	assert.True(t, ok)
	assert.NotNil(t, poly)

	_, ok = idx.Polygon("missing")
	assert.False(t, ok)
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	_, _, ok := idx.Locate(model.Coordinate{})
	assert.False(t, ok)
	assert.Zero(t, idx.Len())
}
