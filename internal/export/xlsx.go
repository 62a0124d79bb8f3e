package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/field-allocator/internal/model"
)

const (
	assignmentSheet = "assignments"
	officerSheet    = "officers"
)

// WriteAssignmentsXLSX writes one row per assignment. Coordinates and
// scores are numeric cells.
func WriteAssignmentsXLSX(path string, assignments []model.Assignment) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(assignmentSheet)
	if err != nil {
		return eris.Wrap(err, "export: add assignments sheet")
	}
	addHeader(sheet, AssignmentColumns)
	for _, a := range assignments {
		row := sheet.AddRow()
		row.AddCell().SetString(a.RequestID)
		row.AddCell().SetString(a.CustomerName)
		row.AddCell().SetString(a.OfficerID)
		row.AddCell().SetString(a.OfficerName)
		row.AddCell().SetFloat(a.SiteLat)
		row.AddCell().SetFloat(a.SiteLon)
		row.AddCell().SetFloat(a.Score)
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

// WriteOfficersXLSX writes the roster in the input sheet's layout so it can
// be fed into the next run.
func WriteOfficersXLSX(path string, officers []model.Officer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(officerSheet)
	if err != nil {
		return eris.Wrap(err, "export: add officers sheet")
	}
	addHeader(sheet, OfficerColumns)
	for _, o := range officers {
		vals := officerRow(o)
		row := sheet.AddRow()
		row.AddCell().SetString(vals[0])
		row.AddCell().SetString(vals[1])
		row.AddCell().SetFloat(o.Location.Lat)
		row.AddCell().SetFloat(o.Location.Lon)
		row.AddCell().SetString(vals[4])
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols []string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}
