package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/field-allocator/internal/fetcher"
	"github.com/sells-group/field-allocator/internal/loader"
	"github.com/sells-group/field-allocator/internal/model"
)

func sampleAssignments() []model.Assignment {
	return []model.Assignment{
		{
			RequestID:       "R1",
			CustomerName:    "Acme",
			OfficerID:       "FO1",
			OfficerName:     "Asha",
			SiteLat:         12.95,
			SiteLon:         77.55,
			Score:           0.873,
			OfficerLocation: model.Coordinate{Lat: 12.9, Lon: 77.5},
			DistanceKM:      7.4,
			ZoneRelation:    "same_zone",
		},
		{
			RequestID: "R2",
			OfficerID: "FO2",
			SiteLat:   13.1,
			SiteLon:   77.7,
			Score:     0.3,
		},
	}
}

func sampleOfficers() []model.Officer {
	return []model.Officer{
		{ID: "FO1", Name: "Asha", Location: model.Coordinate{Lat: 12.95, Lon: 77.55}, Active: false},
		{ID: "FO2", Name: "Ravi", Location: model.Coordinate{Lat: 13.1, Lon: 77.7}, Active: true},
	}
}

func TestEncodeAssignmentsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeAssignmentsCSV(&buf, sampleAssignments()))

	want := "request_id,customer_name,assigned_FO_Id,assigned_FO_Name,site_lat,site_lon,final_score\n" +
		"R1,Acme,FO1,Asha,12.95,77.55,0.873\n" +
		"R2,,FO2,,13.1,77.7,0.3\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAssignments_XLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteAssignments(path, sampleAssignments()))

	tbl, err := fetcher.ReadTable(path, "assignments")
	require.NoError(t, err)
	assert.Equal(t, AssignmentColumns, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "R1", tbl.Rows[0][0])
	assert.Equal(t, "FO1", tbl.Rows[0][2])
}

func TestWriteOfficers_FeedsNextRun(t *testing.T) {
	for _, ext := range []string{".xlsx", ".csv"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "officers"+ext)
			require.NoError(t, WriteOfficers(path, sampleOfficers()))

			officers, errs, err := loader.Officers(path, "")
			require.NoError(t, err)
			assert.Empty(t, errs)
			require.Len(t, officers, 2)
			assert.Equal(t, "FO1", officers[0].ID)
			assert.False(t, officers[0].Active)
			assert.True(t, officers[1].Active)
			assert.InDelta(t, 13.1, officers[1].Location.Lat, 1e-9)
		})
	}
}

func TestWriteAssignments_UnsupportedFormat(t *testing.T) {
	err := WriteAssignments(filepath.Join(t.TempDir(), "out.txt"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	err = WriteOfficers(filepath.Join(t.TempDir(), "out.json"), nil)
	require.Error(t, err)
}

func TestWriteAssignmentsCSV_BadPath(t *testing.T) {
	err := WriteAssignmentsCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export: create")
}

func TestFeatureCollection(t *testing.T) {
	layers := Layers{
		Zones: []model.Zone{
			{ID: "Z1", Vertices: []model.Coordinate{{Lat: 12.8, Lon: 77.4}, {Lat: 12.8, Lon: 77.6}, {Lat: 13.0, Lon: 77.6}}},
			{ID: "broken", Vertices: []model.Coordinate{{Lat: 1, Lon: 1}}},
		},
		Assignments: sampleAssignments()[:1],
		Unassigned:  []model.Site{{RequestID: "R9", Location: model.Coordinate{Lat: 1, Lon: 2}}},
		Officers:    sampleOfficers(),
	}

	fc := FeatureCollection(layers)
	// 1 zone + (site + move) + 1 unassigned + 2 officers
	require.Len(t, fc.Features, 6)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	assert.Equal(t, map[string]int{KindZone: 1, KindSite: 1, KindMove: 1, KindUnassigned: 1, KindOfficer: 2}, kinds)

	move := fc.Features[2]
	assert.Equal(t, "move:R1", move.ID)
	assert.Equal(t, []float64{77.5, 12.9, 77.55, 12.95}, move.Geometry.FlatCoords())
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.geojson")
	require.NoError(t, WriteGeoJSON(path, Layers{Assignments: sampleAssignments()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 4)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.JSONEq(t, "[77.55,12.95]", string(doc.Features[0].Geometry.Coordinates))
	assert.Equal(t, "LineString", doc.Features[1].Geometry.Type)
	assert.Equal(t, "FO1", doc.Features[0].Properties["officer_id"])
}
