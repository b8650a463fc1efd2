package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowreport/internal/table"
)

func sectorTable() *table.Table {
	t := table.New("SECTOR_NAME", "DATE", "USD_POSITION")
	t.Append("Technology", "2026-03-02", "5400.10")
	t.Append("Energy", "2026-03-02", "2100.00")
	t.Append("Health Care", "2026-03-02", "900.75")
	return t
}

func TestGridRendersHeaderAndFooter(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)

	r.Grid(sectorTable(), 1)

	out := buf.String()
	assert.Contains(t, out, "SECTOR_NAME")
	assert.Contains(t, out, "Technology")
	assert.Contains(t, out, "Page 1 of 1 (3 rows)")
}

func TestGridPaginates(t *testing.T) {
	tbl := table.New("N")
	for i := 0; i < 12; i++ {
		tbl.Append("row")
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)
	r.Grid(tbl, 2)

	assert.Contains(t, buf.String(), "Page 2 of 3 (12 rows)")
}

func TestGridClampsOutOfRangePage(t *testing.T) {
	tbl := table.New("N")
	for i := 0; i < 10; i++ {
		tbl.Append("row")
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)
	r.Grid(tbl, 9)

	assert.Contains(t, buf.String(), "Page 2 of 2 (10 rows)")
}

func TestGridEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)

	r.Grid(table.New("A", "B"), 1)

	assert.Contains(t, buf.String(), "(no rows)")
}

func TestBarChart(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)

	r.BarChart("Top Sectors", sectorTable(), "SECTOR_NAME", "USD_POSITION", 10)

	out := buf.String()
	assert.Contains(t, out, "Top Sectors")
	assert.Contains(t, out, "Technology")
	assert.Contains(t, out, "█")

	// Largest value draws the longest bar
	techLine, energyLine := "", ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Technology") {
			techLine = line
		}
		if strings.Contains(line, "Energy") {
			energyLine = line
		}
	}
	require.NotEmpty(t, techLine)
	require.NotEmpty(t, energyLine)
	assert.Greater(t, strings.Count(techLine, "█"), strings.Count(energyLine, "█"))
}

func TestBarChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)

	r.BarChart("Top Sectors", table.New("SECTOR_NAME", "USD_POSITION"), "SECTOR_NAME", "USD_POSITION", 10)

	assert.Contains(t, buf.String(), "(no data)")
}

func TestLineChart(t *testing.T) {
	tbl := table.New("DATE", "CLOSE_USD_POSITION")
	tbl.Append("2026-03-03", "120.5")
	tbl.Append("2026-03-01", "100.0")
	tbl.Append("2026-03-02", "110.0")

	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)
	r.LineChart("Daily Close for AAPL", tbl, "DATE", "CLOSE_USD_POSITION")

	out := buf.String()
	assert.Contains(t, out, "Daily Close for AAPL")
	assert.Contains(t, out, "•")
	assert.Contains(t, out, "120.50")
	assert.Contains(t, out, "100.00")
	// x axis ordered by date despite input order
	assert.Contains(t, out, "2026-03-01 .. 2026-03-03")
}

func TestLineChartNoNumericData(t *testing.T) {
	tbl := table.New("DATE", "CLOSE_USD_POSITION")
	tbl.Append("2026-03-01", "n/a")

	var buf bytes.Buffer
	r := NewRenderer(&buf, 5)
	r.LineChart("Daily Close", tbl, "DATE", "CLOSE_USD_POSITION")

	assert.Contains(t, buf.String(), "(no numeric data)")
}

func TestSample(t *testing.T) {
	xs := make([]string, 200)
	ys := make([]float64, 200)
	for i := range ys {
		xs[i] = "x"
		ys[i] = float64(i)
	}

	sx, sy := sample(xs, ys, 64)
	require.Len(t, sy, 64)
	require.Len(t, sx, 64)
	assert.Equal(t, float64(0), sy[0])
	assert.Equal(t, float64(199), sy[63])
}
