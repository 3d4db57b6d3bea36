// Package finanzguru reads Finanzguru transaction exports: semicolon
// delimited CSV with a header row and comma-decimal amounts. No other CSV
// dialect is supported.
package finanzguru

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/geldfluss/sankey/internal/frame"
)

// CanParse checks whether a file looks like a Finanzguru export based on its
// extension and the first header bytes: a .csv file whose header row is
// semicolon delimited with at least two columns.
func CanParse(path string, header []byte) bool {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return false
	}

	r := csv.NewReader(strings.NewReader(string(header)))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	record, err := r.Read()
	if err != nil {
		return false
	}
	return len(record) >= 2
}

// Read parses a Finanzguru CSV export into a frame. The first record is the
// header; every following record becomes one row. Records shorter than the
// header are padded (the frame fills the gaps with the "empty" placeholder),
// records longer than the header are an error.
func Read(r io.Reader) (*frame.Frame, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV content: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		columns[i] = strings.TrimSpace(name)
	}

	rows := make([]frame.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		// Skip fully blank records.
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if len(record) > len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(record), len(columns))
		}
		row := make(frame.Row, len(columns))
		for j, value := range record {
			row[columns[j]] = value
		}
		rows = append(rows, row)
	}

	return frame.New(columns, rows), nil
}

// ReadFile opens and parses a Finanzguru CSV export from disk.
func ReadFile(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}
