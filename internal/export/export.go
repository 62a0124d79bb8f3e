// Package export writes allocation results as spreadsheets, CSV and GeoJSON.
package export

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/model"
)

// Column headers of the assignment and officer outputs.
var (
	AssignmentColumns = []string{"request_id", "customer_name", "assigned_FO_Id", "assigned_FO_Name", "site_lat", "site_lon", "final_score"}
	OfficerColumns    = []string{"FO Id", "Field officer Name", "lat", "long", "Active (Y/N)"}
)

// WriteAssignments writes assignments to path as XLSX or CSV by extension.
func WriteAssignments(path string, assignments []model.Assignment) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return WriteAssignmentsXLSX(path, assignments)
	case ".csv":
		return WriteAssignmentsCSV(path, assignments)
	default:
		return eris.Errorf("export: unsupported output format %q", ext)
	}
}

// WriteOfficers writes the updated roster to path as XLSX or CSV by extension.
func WriteOfficers(path string, officers []model.Officer) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return WriteOfficersXLSX(path, officers)
	case ".csv":
		return WriteOfficersCSV(path, officers)
	default:
		return eris.Errorf("export: unsupported output format %q", ext)
	}
}

func assignmentRow(a model.Assignment) []string {
	return []string{
		a.RequestID,
		a.CustomerName,
		a.OfficerID,
		a.OfficerName,
		formatFloat(a.SiteLat),
		formatFloat(a.SiteLon),
		formatFloat(a.Score),
	}
}

func officerRow(o model.Officer) []string {
	active := "N"
	if o.Active {
		active = "Y"
	}
	return []string{o.ID, o.Name, formatFloat(o.Location.Lat), formatFloat(o.Location.Lon), active}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
