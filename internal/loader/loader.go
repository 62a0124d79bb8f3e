// Package loader turns officer, site and zone files into validated model
// records. Malformed records are skipped and reported as
// *model.InputError; only unreadable files or missing required columns
// fail the whole load.
package loader

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/field-allocator/internal/fetcher"
	"github.com/sells-group/field-allocator/internal/model"
)

// Officers reads the officer roster from an XLSX or CSV file.
func Officers(path, sheet string) ([]model.Officer, []error, error) {
	tbl, err := fetcher.ReadTable(path, sheet)
	if err != nil {
		return nil, nil, eris.Wrap(err, "loader: read officers")
	}
	return ParseOfficers(tbl)
}

// ParseOfficers maps officer rows. Required columns: id, lat, long.
// A missing active column marks every officer active.
func ParseOfficers(tbl *fetcher.Table) ([]model.Officer, []error, error) {
	h := newHeader(tbl.Header)
	idCol, latCol, lonCol := h.find(officerIDCols), h.find(latCols), h.find(lonCols)
	if err := requireColumns("officers", map[string]int{"id": idCol, "lat": latCol, "long": lonCol}); err != nil {
		return nil, nil, err
	}
	nameCol, activeCol := h.find(officerNameCols), h.find(officerActiveCols)
	if activeCol < 0 {
		zap.L().Warn("loader: officers have no active column, treating all as active")
	}

	var (
		officers []model.Officer
		errs     []error
	)
	for i, row := range tbl.Rows {
		rowNum := i + 1
		id := tbl.Cell(row, idCol)
		loc, field, err := parseCoordinate(tbl.Cell(row, latCol), tbl.Cell(row, lonCol))
		if err != nil {
			errs = append(errs, &model.InputError{Source: "officers", Row: rowNum, ID: id, Field: field, Reason: err.Error()})
			continue
		}
		active := true
		if activeCol >= 0 {
			active, err = ParseActive(tbl.Cell(row, activeCol))
			if err != nil {
				errs = append(errs, &model.InputError{Source: "officers", Row: rowNum, ID: id, Field: "active", Reason: err.Error()})
				continue
			}
		}
		officers = append(officers, model.Officer{
			ID:       id,
			Name:     tbl.Cell(row, nameCol),
			Location: loc,
			Active:   active,
		})
	}

	officers, verrs := ValidateOfficers(officers)
	errs = append(errs, verrs...)
	logSkipped("officers", errs)
	return officers, errs, nil
}

// Sites reads the site queue from an XLSX or CSV file. Row order is the
// processing order.
func Sites(path, sheet string) ([]model.Site, []error, error) {
	tbl, err := fetcher.ReadTable(path, sheet)
	if err != nil {
		return nil, nil, eris.Wrap(err, "loader: read sites")
	}
	return ParseSites(tbl)
}

// ParseSites maps site rows. Required columns: request id, latitude,
// longitude.
func ParseSites(tbl *fetcher.Table) ([]model.Site, []error, error) {
	h := newHeader(tbl.Header)
	idCol, latCol, lonCol := h.find(siteIDCols), h.find(siteLatCols), h.find(siteLonCols)
	if err := requireColumns("sites", map[string]int{"request_id": idCol, "property_latitude": latCol, "property_longitude": lonCol}); err != nil {
		return nil, nil, err
	}
	nameCol := h.find(siteNameCols)

	var (
		sites []model.Site
		errs  []error
	)
	for i, row := range tbl.Rows {
		id := tbl.Cell(row, idCol)
		loc, field, err := parseCoordinate(tbl.Cell(row, latCol), tbl.Cell(row, lonCol))
		if err != nil {
			errs = append(errs, &model.InputError{Source: "sites", Row: i + 1, ID: id, Field: field, Reason: err.Error()})
			continue
		}
		sites = append(sites, model.Site{
			RequestID:    id,
			CustomerName: tbl.Cell(row, nameCol),
			Location:     loc,
		})
	}

	sites, verrs := ValidateSites(sites)
	errs = append(errs, verrs...)
	logSkipped("sites", errs)
	return sites, errs, nil
}

// Zones reads zone polygons from XLSX/CSV (latN/longN columns), YAML or an
// ESRI shapefile, chosen by extension.
func Zones(path, sheet string) ([]model.Zone, []error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ZonesYAML(path)
	case ".shp":
		return ZonesShapefile(path)
	}
	tbl, err := fetcher.ReadTable(path, sheet)
	if err != nil {
		return nil, nil, eris.Wrap(err, "loader: read zones")
	}
	return ParseZones(tbl)
}

// ParseZones maps zone rows. Vertex columns latN/longN are read in numeric
// order; empty pairs are skipped. A zone with fewer than 3 usable vertices
// is reported and dropped.
func ParseZones(tbl *fetcher.Table) ([]model.Zone, []error, error) {
	h := newHeader(tbl.Header)
	idCol := h.find(zoneIDCols)
	if err := requireColumns("zones", map[string]int{"zone": idCol}); err != nil {
		return nil, nil, err
	}
	vcols := h.vertexColumns()
	if len(vcols) < 3 {
		return nil, nil, eris.Errorf("loader: zones need at least 3 latN/longN column pairs, found %d", len(vcols))
	}

	var (
		zones []model.Zone
		errs  []error
	)
	for i, row := range tbl.Rows {
		id := tbl.Cell(row, idCol)
		z := model.Zone{ID: id}
		var bad *model.InputError
		for _, vc := range vcols {
			latStr, lonStr := tbl.Cell(row, vc.lat), tbl.Cell(row, vc.lon)
			if latStr == "" && lonStr == "" {
				continue
			}
			c, field, err := parseCoordinate(latStr, lonStr)
			if err != nil {
				bad = &model.InputError{Source: "zones", Row: i + 1, ID: id, Field: field + strconv.Itoa(vc.n), Reason: err.Error()}
				break
			}
			z.Vertices = append(z.Vertices, c)
		}
		if bad != nil {
			errs = append(errs, bad)
			continue
		}
		if e := checkZone(i+1, z); e != nil {
			errs = append(errs, e)
			continue
		}
		zones = append(zones, z)
	}
	logSkipped("zones", errs)
	return zones, errs, nil
}

func checkZone(row int, z model.Zone) *model.InputError {
	if strings.TrimSpace(z.ID) == "" {
		return &model.InputError{Source: "zones", Row: row, Field: "zone", Reason: "missing identifier"}
	}
	distinct := map[model.Coordinate]bool{}
	for _, v := range z.Vertices {
		distinct[v] = true
	}
	if len(distinct) < 3 {
		return &model.InputError{Source: "zones", Row: row, ID: z.ID, Field: "polygon",
			Reason: "fewer than 3 usable vertices"}
	}
	return nil
}

func requireColumns(source string, cols map[string]int) error {
	var missing []string
	for name, idx := range cols {
		if idx < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return eris.Errorf("loader: %s missing required columns: %s", source, strings.Join(missing, ", "))
	}
	return nil
}

func logSkipped(source string, errs []error) {
	for _, e := range errs {
		zap.L().Warn("loader: skipping record",
			zap.String("source", source),
			zap.Error(e),
		)
	}
}
