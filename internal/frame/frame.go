// Package frame provides the in-memory transaction table the aggregation
// engine operates on: an ordered sequence of rows mapping column names to
// text cells, plus the row-selection primitives used by the income and issue
// aggregators.
package frame

import (
	"fmt"
	"strings"

	"github.com/geldfluss/sankey/internal/amount"
)

// EmptyCell is the placeholder every missing or blank cell is normalized to
// before aggregation. Downstream filters do substring and equality matching
// and must never see null-like gaps.
const EmptyCell = "empty"

// WholeYear is the sentinel month selecting every row of a year regardless
// of its month column.
const WholeYear = 13

// Filter is a column allow-list. A row passes if its value in Column is one
// of Values. Multiple filters compose by intersection.
type Filter struct {
	Column string   `yaml:"csv_column_name"`
	Values []string `yaml:"csv_value_filters"`
}

// Allows reports whether the given cell value is in the allow-list.
func (f Filter) Allows(value string) bool {
	for _, v := range f.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Row is one transaction record. Cells are keyed by column name.
type Row map[string]string

// Frame is an ordered, read-only table of transaction rows. Selection
// methods return new frames sharing the underlying rows; rows are never
// mutated after construction.
type Frame struct {
	columns []string
	rows    []Row
}

// New creates a frame from column names and rows. Cells missing from a row
// or holding only whitespace are filled with EmptyCell.
func New(columns []string, rows []Row) *Frame {
	filled := make([]Row, len(rows))
	for i, row := range rows {
		r := make(Row, len(columns))
		for _, col := range columns {
			value := strings.TrimSpace(row[col])
			if value == "" {
				value = EmptyCell
			}
			r[col] = value
		}
		filled[i] = r
	}
	return &Frame{columns: append([]string(nil), columns...), rows: filled}
}

// Columns returns the column names in file order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Rows returns the rows in order. The slice is a copy; the rows are shared
// and must be treated as read-only.
func (f *Frame) Rows() []Row {
	return append([]Row(nil), f.rows...)
}

// derive builds a sub-frame over the same columns.
func (f *Frame) derive(rows []Row) *Frame {
	return &Frame{columns: f.columns, rows: rows}
}

// SelectPeriod keeps the rows belonging to the requested period. With the
// WholeYear sentinel month, rows survive when their year column equals the
// year; otherwise the month column must exactly match "YYYY-MM" with a
// zero-padded month. A selection matching zero rows is a valid empty frame,
// not an error.
func (f *Frame) SelectPeriod(yearColumn, monthColumn string, year, month int) *Frame {
	var want, column string
	if month == WholeYear {
		column = yearColumn
		want = fmt.Sprintf("%d", year)
	} else {
		column = monthColumn
		want = fmt.Sprintf("%d-%02d", year, month)
	}

	var rows []Row
	for _, row := range f.rows {
		if row[column] == want {
			rows = append(rows, row)
		}
	}
	return f.derive(rows)
}

// SelectByFilters keeps the rows passing every filter. An empty filter list
// is the identity selection.
func (f *Frame) SelectByFilters(filters []Filter) *Frame {
	if len(filters) == 0 {
		return f
	}
	var rows []Row
	for _, row := range f.rows {
		keep := true
		for _, filter := range filters {
			if !filter.Allows(row[filter.Column]) {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, row)
		}
	}
	return f.derive(rows)
}

// SelectContains keeps the rows whose value in column contains needle,
// case-insensitively.
func (f *Frame) SelectContains(column, needle string) *Frame {
	lowered := strings.ToLower(needle)
	var rows []Row
	for _, row := range f.rows {
		if strings.Contains(strings.ToLower(row[column]), lowered) {
			rows = append(rows, row)
		}
	}
	return f.derive(rows)
}

// Column returns every cell of the named column in row order.
func (f *Frame) Column(column string) []string {
	values := make([]string, len(f.rows))
	for i, row := range f.rows {
		values[i] = row[column]
	}
	return values
}

// DistinctValues returns the distinct cell values of a column in
// first-occurrence order.
func (f *Frame) DistinctValues(column string) []string {
	seen := make(map[string]struct{}, len(f.rows))
	var values []string
	for _, row := range f.rows {
		v := row[column]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// SumAbsolute sums the amount column over all rows and returns the absolute
// total.
func (f *Frame) SumAbsolute(amountColumn string) (float64, error) {
	return amount.SumAbsolute(f.Column(amountColumn))
}

// SumWhereContains sums the amount column over the rows whose matchColumn
// contains a needle (case-insensitive substring), accumulated across all
// needles. Needles matching overlapping row sets double-count those rows;
// the income aggregation relies on this accumulation semantics.
func (f *Frame) SumWhereContains(amountColumn, matchColumn string, needles []string) (float64, error) {
	var total float64
	for _, needle := range needles {
		sub := f.SelectContains(matchColumn, needle)
		sum, err := sub.SumAbsolute(amountColumn)
		if err != nil {
			return 0, err
		}
		total += sum
	}
	return total, nil
}
