// Package fetcher reads tabular input (XLSX or CSV) into header + rows.
package fetcher

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a header row plus data rows. Rows may be shorter than Header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the trimmed value at column col of row, or "" when the row is
// too short or col is negative.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ReadTable reads path as XLSX or CSV based on its extension. sheet selects
// an XLSX sheet by name; empty means the first sheet. Fully empty rows are
// dropped.
func ReadTable(path, sheet string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, err = ReadXLSX(path, XLSXOptions{SheetName: sheet})
	case ".csv":
		rows, err = ReadCSVFile(path, CSVOptions{TrimSpace: true})
	default:
		return nil, eris.Errorf("fetcher: unsupported table format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	var kept [][]string
	for _, r := range rows {
		if !blank(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, eris.Errorf("fetcher: %s has no header row", path)
	}
	return &Table{Header: kept[0], Rows: kept[1:]}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
