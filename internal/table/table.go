// Package table holds tabular query results: ordered columns, ordered rows.
// Cells are rendered strings; numeric helpers parse on demand.
package table

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"time"

	"snowreport/pkg/errors"
)

// Table is an in-memory result set. It has no identity beyond the session
// store key under which it may be cached.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates a table with the given columns and no rows.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds a row. Short rows are padded so every row matches the header.
func (t *Table) Append(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column name); empty string when out of range.
func (t *Table) Cell(row int, col string) string {
	i := t.ColumnIndex(col)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][i]
}

// Number parses the cell at (row, col) as a float64.
func (t *Table) Number(row int, col string) (float64, error) {
	raw := t.Cell(row, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeResultParsing,
			fmt.Sprintf("Cell %q in column %s is not numeric", raw, col))
	}
	return v, nil
}

// Filter returns the rows whose value in col equals value. Columns are shared.
func (t *Table) Filter(col, value string) *Table {
	out := &Table{Columns: t.Columns}
	i := t.ColumnIndex(col)
	if i < 0 {
		return out
	}
	for _, row := range t.Rows {
		if row[i] == value {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// MaxString returns the lexicographically largest value in col. ISO dates
// sort correctly under this, which is what the sector report relies on.
func (t *Table) MaxString(col string) string {
	i := t.ColumnIndex(col)
	if i < 0 {
		return ""
	}
	max := ""
	for _, row := range t.Rows {
		if row[i] > max {
			max = row[i]
		}
	}
	return max
}

// Unique returns the distinct values of col in first-seen order.
func (t *Table) Unique(col string) []string {
	i := t.ColumnIndex(col)
	if i < 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows {
		if _, ok := seen[row[i]]; ok {
			continue
		}
		seen[row[i]] = struct{}{}
		out = append(out, row[i])
	}
	return out
}

// SortByNumberDesc returns a copy sorted by the numeric value of col,
// largest first. Non-numeric cells sort last.
func (t *Table) SortByNumberDesc(col string) *Table {
	out := &Table{Columns: t.Columns, Rows: make([][]string, len(t.Rows))}
	copy(out.Rows, t.Rows)

	i := t.ColumnIndex(col)
	if i < 0 {
		return out
	}

	key := func(row []string) (float64, bool) {
		v, err := strconv.ParseFloat(row[i], 64)
		return v, err == nil
	}

	sort.SliceStable(out.Rows, func(a, b int) bool {
		va, oka := key(out.Rows[a])
		vb, okb := key(out.Rows[b])
		if oka != okb {
			return oka
		}
		return va > vb
	})
	return out
}

// Head returns the first n rows (all rows when n exceeds the row count).
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// Scan drains a database/sql result set into a Table.
func Scan(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeResultParsing, "Failed to read result columns")
	}

	t := &Table{Columns: cols}

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeResultParsing, "Failed to scan result row")
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		t.Rows = append(t.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeResultParsing, "Result iteration failed")
	}

	return t, nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
