package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/field-allocator/internal/model"
	"github.com/sells-group/field-allocator/internal/zone"
)

func TestFormatPartition(t *testing.T) {
	idx, errs := zone.New([]model.Zone{
		{ID: "north", Vertices: []model.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}}},
		{ID: "south", Vertices: []model.Coordinate{{Lat: -2, Lon: 0}, {Lat: -2, Lon: 1}, {Lat: -1, Lon: 1}}},
	})
	require.Empty(t, errs)

	p := idx.Partition([]model.Site{
		{RequestID: "R1", Location: model.Coordinate{Lat: 0.5, Lon: 0.5}},
		{RequestID: "R2", Location: model.Coordinate{Lat: 5, Lon: 5}},
		{RequestID: "R3", Location: model.Coordinate{Lat: 1, Lon: 0.5}},
	})

	var buf bytes.Buffer
	formatPartition(&buf, p)
	out := buf.String()

	assert.Contains(t, out, "REQUEST_ID")
	assert.Regexp(t, `R1\s+north`, out)
	assert.Regexp(t, `R3\s+north`, out)
	assert.Regexp(t, `R2\s+-`, out)
	assert.Regexp(t, `north\s+2`, out)
	assert.Regexp(t, `south\s+0`, out)
	assert.Regexp(t, `\(outside\)\s+1`, out)
}
