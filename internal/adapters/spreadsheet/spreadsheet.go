// Package spreadsheet loads a workbook from memory and exposes one sheet
// as a headers-plus-rows table. Parsing stops at the cell-text level; what
// the columns mean is the caller's concern.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound reports that the requested sheet is absent from the
// workbook. Callers surface this with the filename so operators can spot a
// renamed tab.
var ErrSheetNotFound = errors.New("sheet not found in workbook")

// Table is one sheet reduced to string cells: the first row as headers,
// everything after as data rows.
type Table struct {
	Sheet   string
	Headers []string

	rows    [][]string
	headIdx map[string]int
}

// Load opens workbook bytes and extracts the named sheet. An empty sheet
// name selects the workbook's first sheet.
func Load(data []byte, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if !hasSheet(f, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	t := &Table{Sheet: sheet}
	if len(rows) > 0 {
		t.Headers = rows[0]
		t.rows = rows[1:]
	}
	t.headIdx = make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if _, seen := t.headIdx[h]; !seen {
			t.headIdx[h] = i
		}
	}
	return t, nil
}

func hasSheet(f *excelize.File, sheet string) bool {
	for _, name := range f.GetSheetList() {
		if name == sheet {
			return true
		}
	}
	return false
}

// RowCount returns the number of data rows (headers excluded).
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Cell returns the value at a data row under the given actual header.
// Rows shorter than the header line (trailing empty cells are not stored
// in the file) read as empty, as do unknown headers.
func (t *Table) Cell(row int, header string) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	col, ok := t.headIdx[header]
	if !ok || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}
