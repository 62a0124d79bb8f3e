package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/model"
)

// WriteAssignmentsCSV writes assignments to a CSV file.
func WriteAssignmentsCSV(path string, assignments []model.Assignment) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeAssignmentsCSV(w, assignments)
	})
}

// WriteOfficersCSV writes the roster to a CSV file.
func WriteOfficersCSV(path string, officers []model.Officer) error {
	return writeFile(path, func(w io.Writer) error {
		rows := make([][]string, 0, len(officers))
		for _, o := range officers {
			rows = append(rows, officerRow(o))
		}
		return encodeCSV(w, OfficerColumns, rows)
	})
}

// EncodeAssignmentsCSV writes assignments as CSV to w.
func EncodeAssignmentsCSV(w io.Writer, assignments []model.Assignment) error {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, assignmentRow(a))
	}
	return encodeCSV(w, AssignmentColumns, rows)
}

func encodeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return eris.Wrap(err, "export: write csv rows")
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "export: close %s", path)
		}
	}()
	return write(f)
}
