package main

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/loader"
	"github.com/sells-group/field-allocator/internal/model"
	"github.com/sells-group/field-allocator/internal/scorer"
	"github.com/sells-group/field-allocator/internal/store"
)

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Store:      config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(dir, "runs.db")},
		Scoring:    scorer.DefaultConfig(),
		Allocation: config.AllocationConfig{Workers: 1},
	}
}

func testInputs(t *testing.T, dir string) allocateOptions {
	t.Helper()
	return allocateOptions{
		officers: writeFile(t, dir, "officers.csv",
			"FO Id,Field officer Name,lat,long,Active (Y/N)",
			"FO1,Asha,1,1,Y",
			"FO2,Ravi,50,50,N",
		),
		sites: writeFile(t, dir, "sites.csv",
			"request_id,customer_name,property_latitude,property_longitude",
			"R1,Acme,2,2",
			"R2,Beta,49.9,50.1",
			"R3,Bad,abc,1",
		),
		zones: writeFile(t, dir, "zones.yaml",
			"zones:",
			"  - id: Z",
			"    vertices: [[0, 0], [10, 0], [10, 10], [0, 10]]",
		),
	}
}

func TestRunAllocate_PrintsCSV(t *testing.T) {
	dir := t.TempDir()
	o := testInputs(t, dir)

	var stdout, stderr bytes.Buffer
	run, err := runAllocate(context.Background(), testConfig(dir), o, &stdout, &stderr)
	require.NoError(t, err)
	require.Len(t, run.Assignments, 2)
	assert.Equal(t, "FO1", run.Assignments[0].OfficerID)
	assert.Equal(t, "FO2", run.Assignments[1].OfficerID)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "request_id,customer_name,assigned_FO_Id"))
	assert.True(t, strings.HasPrefix(lines[1], "R1,Acme,FO1,Asha,"))

	assert.Contains(t, stderr.String(), "Assigned:")
	assert.Contains(t, stderr.String(), "Rejected records:  1")
	assert.Contains(t, stderr.String(), `sites row 3 (R3) field "lat"`)
}

func TestRunAllocate_WritesOutputsAndPersists(t *testing.T) {
	dir := t.TempDir()
	o := testInputs(t, dir)
	o.out = filepath.Join(dir, "assignments.xlsx")
	o.officersOut = filepath.Join(dir, "officers_out.csv")
	o.geojson = filepath.Join(dir, "run.geojson")
	o.persist = true
	o.workers = 4
	c := testConfig(dir)

	var stdout, stderr bytes.Buffer
	run, err := runAllocate(context.Background(), c, o, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, run.ID)

	assert.FileExists(t, o.out)
	assert.FileExists(t, o.geojson)

	officers, errs, err := loader.Officers(o.officersOut, "")
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, officers, 2)
	assert.Equal(t, model.Coordinate{Lat: 2, Lon: 2}, officers[0].Location)
	assert.False(t, officers[0].Active)

	st, err := store.Open(context.Background(), c.Store)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	saved, err := st.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Assignments, 2)
	assert.Len(t, saved.InputErrors, 1)
}

func TestRunAllocate_PersistDisabled(t *testing.T) {
	dir := t.TempDir()
	o := testInputs(t, dir)
	o.persist = true
	c := testConfig(dir)
	c.Store.Driver = "none"

	var stdout, stderr bytes.Buffer
	_, err := runAllocate(context.Background(), c, o, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistence is disabled")
}

func TestRunAllocate_NoOfficers(t *testing.T) {
	dir := t.TempDir()
	o := testInputs(t, dir)
	o.officers = writeFile(t, dir, "empty.csv", "FO Id,lat,long")

	var stdout, stderr bytes.Buffer
	_, err := runAllocate(context.Background(), testConfig(dir), o, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no officers available")
}

func TestRunAllocate_MissingFile(t *testing.T) {
	dir := t.TempDir()
	o := testInputs(t, dir)
	o.sites = filepath.Join(dir, "nope.csv")

	var stdout, stderr bytes.Buffer
	_, err := runAllocate(context.Background(), testConfig(dir), o, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loader: read sites")
}

func TestRunAllocate_RemoteAndZippedInputs(t *testing.T) {
	dir := t.TempDir()
	o := testInputs(t, dir)

	sites, err := os.ReadFile(o.sites)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(sites)
	}))
	defer srv.Close()
	o.sites = srv.URL + "/queue/sites.csv"

	zipPath := filepath.Join(dir, "roster.zip")
	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	entry, err := zw.Create("officers.csv")
	require.NoError(t, err)
	roster, err := os.ReadFile(o.officers)
	require.NoError(t, err)
	_, err = entry.Write(roster)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())
	o.officers = zipPath

	var stdout, stderr bytes.Buffer
	run, err := runAllocate(context.Background(), testConfig(dir), o, &stdout, &stderr)
	require.NoError(t, err)
	require.Len(t, run.Assignments, 2)
	assert.Equal(t, "R1", run.Assignments[0].RequestID)
}
