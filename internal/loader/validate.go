package loader

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/model"
)

// parseCoordinate parses lat/lon strings into a validated Coordinate.
func parseCoordinate(latStr, lonStr string) (model.Coordinate, string, error) {
	lat, err := parseFloat(latStr)
	if err != nil {
		return model.Coordinate{}, "lat", err
	}
	lon, err := parseFloat(lonStr)
	if err != nil {
		return model.Coordinate{}, "lon", err
	}
	c := model.Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return model.Coordinate{}, "lat/lon", err
	}
	return c, "", nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, eris.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Errorf("%q is not a number", s)
	}
	return v, nil
}

// ParseActive interprets the availability flag.
func ParseActive(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES", "TRUE", "1", "ACTIVE":
		return true, nil
	case "N", "NO", "FALSE", "0", "":
		return false, nil
	default:
		return false, eris.Errorf("%q is not a Y/N value", s)
	}
}

// ValidateOfficers drops officers with an empty or duplicate id or an
// invalid location. Rows are numbered from 1 in input order.
func ValidateOfficers(officers []model.Officer) ([]model.Officer, []error) {
	var (
		out  []model.Officer
		errs []error
	)
	seen := make(map[string]bool, len(officers))
	for i, o := range officers {
		if e := checkRecord("officers", i+1, o.ID, seen, o.Location); e != nil {
			errs = append(errs, e)
			continue
		}
		out = append(out, o)
	}
	return out, errs
}

// ValidateSites drops sites with an empty or duplicate request id or an
// invalid location.
func ValidateSites(sites []model.Site) ([]model.Site, []error) {
	var (
		out  []model.Site
		errs []error
	)
	seen := make(map[string]bool, len(sites))
	for i, s := range sites {
		if e := checkRecord("sites", i+1, s.RequestID, seen, s.Location); e != nil {
			errs = append(errs, e)
			continue
		}
		out = append(out, s)
	}
	return out, errs
}

func checkRecord(source string, row int, id string, seen map[string]bool, loc model.Coordinate) *model.InputError {
	if strings.TrimSpace(id) == "" {
		return &model.InputError{Source: source, Row: row, Field: "id", Reason: "missing identifier"}
	}
	if seen[id] {
		return &model.InputError{Source: source, Row: row, ID: id, Field: "id", Reason: "duplicate identifier"}
	}
	if err := loc.Validate(); err != nil {
		return &model.InputError{Source: source, Row: row, ID: id, Field: "lat/lon", Reason: err.Error()}
	}
	seen[id] = true
	return nil
}
