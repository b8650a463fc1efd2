package table

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	t := New("TICKER", "SECTOR_NAME", "DATE", "CLOSE_USD_POSITION")
	t.Append("AAPL", "Technology", "2026-03-02", "1200.50")
	t.Append("MSFT", "Technology", "2026-03-02", "900.25")
	t.Append("XOM", "Energy", "2026-03-01", "450.00")
	t.Append("AAPL", "Technology", "2026-03-01", "1190.00")
	return t
}

func TestColumnIndexAndCell(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, 0, tbl.ColumnIndex("TICKER"))
	assert.Equal(t, 3, tbl.ColumnIndex("CLOSE_USD_POSITION"))
	assert.Equal(t, -1, tbl.ColumnIndex("MISSING"))

	assert.Equal(t, "XOM", tbl.Cell(2, "TICKER"))
	assert.Equal(t, "", tbl.Cell(99, "TICKER"))
	assert.Equal(t, "", tbl.Cell(0, "MISSING"))
}

func TestNumber(t *testing.T) {
	tbl := sampleTable()

	v, err := tbl.Number(0, "CLOSE_USD_POSITION")
	require.NoError(t, err)
	assert.Equal(t, 1200.50, v)

	_, err = tbl.Number(0, "TICKER")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	tbl := sampleTable()

	tech := tbl.Filter("SECTOR_NAME", "Technology")
	assert.Equal(t, 3, tech.RowCount())
	assert.Equal(t, tbl.Columns, tech.Columns)

	none := tbl.Filter("SECTOR_NAME", "Utilities")
	assert.True(t, none.Empty())

	missing := tbl.Filter("NOPE", "x")
	assert.True(t, missing.Empty())
}

func TestMaxString(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, "2026-03-02", tbl.MaxString("DATE"))
	assert.Equal(t, "", tbl.MaxString("MISSING"))
}

func TestUnique(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, []string{"AAPL", "MSFT", "XOM"}, tbl.Unique("TICKER"))
}

func TestSortByNumberDesc(t *testing.T) {
	tbl := sampleTable()
	sorted := tbl.SortByNumberDesc("CLOSE_USD_POSITION")

	assert.Equal(t, "1200.50", sorted.Rows[0][3])
	assert.Equal(t, "1190.00", sorted.Rows[1][3])
	assert.Equal(t, "450.00", sorted.Rows[3][3])

	// Original order untouched
	assert.Equal(t, "1200.50", tbl.Rows[0][3])
}

func TestHead(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, 2, tbl.Head(2).RowCount())
	assert.Equal(t, 4, tbl.Head(10).RowCount())
	assert.Equal(t, 0, tbl.Head(0).RowCount())
}

func TestEmptyNilSafety(t *testing.T) {
	var tbl *Table
	assert.True(t, tbl.Empty())
	assert.Equal(t, 0, tbl.RowCount())
}

func TestScan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"TICKER", "SHARES", "CLOSE_USD"}).
			AddRow("AAPL", int64(100), 198.5).
			AddRow("MSFT", int64(50), nil),
	)

	rows, err := db.Query("SELECT TICKER, SHARES, CLOSE_USD FROM POSITION")
	require.NoError(t, err)
	defer rows.Close()

	tbl, err := Scan(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"TICKER", "SHARES", "CLOSE_USD"}, tbl.Columns)
	require.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, []string{"AAPL", "100", "198.5"}, tbl.Rows[0])
	// NULL scans to an empty cell
	assert.Equal(t, "", tbl.Rows[1][2])
}
