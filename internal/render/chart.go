package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"snowreport/internal/table"
	"snowreport/internal/ui"
)

const (
	barWidth    = 40
	chartHeight = 12
	chartWidth  = 64
)

var barColor = color.New(color.FgCyan)

// BarChart renders a horizontal bar chart of the top rows of t, labeled by
// labelCol and scaled by the numeric valueCol.
func (r *Renderer) BarChart(title string, t *table.Table, labelCol, valueCol string, top int) {
	fmt.Fprintf(r.out, "\n%s\n", ui.ColorBold(title))

	if t.Empty() {
		fmt.Fprintf(r.out, "%s\n", ui.ColorWarning("(no data)"))
		return
	}

	ranked := t.SortByNumberDesc(valueCol).Head(top)

	maxVal := 0.0
	labelWidth := 0
	for i := range ranked.Rows {
		if v, err := ranked.Number(i, valueCol); err == nil && v > maxVal {
			maxVal = v
		}
		if l := len(ranked.Cell(i, labelCol)); l > labelWidth {
			labelWidth = l
		}
	}

	for i := range ranked.Rows {
		label := ranked.Cell(i, labelCol)
		v, err := ranked.Number(i, valueCol)
		if err != nil {
			continue
		}

		n := 0
		if maxVal > 0 {
			n = int(v / maxVal * barWidth)
		}
		if n == 0 && v > 0 {
			n = 1
		}

		fmt.Fprintf(r.out, "  %-*s %s %s\n",
			labelWidth, label,
			barColor.Sprint(strings.Repeat("█", n)),
			ui.ColorDim(ranked.Cell(i, valueCol)),
		)
	}
}

// LineChart renders a fixed-height series plot of valueCol ordered by xCol
// ascending. Points are sampled evenly when the series is wider than the
// chart.
func (r *Renderer) LineChart(title string, t *table.Table, xCol, valueCol string) {
	fmt.Fprintf(r.out, "\n%s\n", ui.ColorBold(title))

	if t.Empty() {
		fmt.Fprintf(r.out, "%s\n", ui.ColorWarning("(no data)"))
		return
	}

	ordered := sortByStringAsc(t, xCol)

	var xs []string
	var ys []float64
	for i := range ordered.Rows {
		v, err := ordered.Number(i, valueCol)
		if err != nil {
			continue
		}
		xs = append(xs, ordered.Cell(i, xCol))
		ys = append(ys, v)
	}

	if len(ys) == 0 {
		fmt.Fprintf(r.out, "%s\n", ui.ColorWarning("(no numeric data)"))
		return
	}

	xs, ys = sample(xs, ys, chartWidth)

	minY, maxY := ys[0], ys[0]
	for _, v := range ys {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	span := maxY - minY
	grid := make([][]rune, chartHeight)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(" ", len(ys)))
	}

	for col, v := range ys {
		row := chartHeight - 1
		if span > 0 {
			row = chartHeight - 1 - int((v-minY)/span*float64(chartHeight-1))
		}
		grid[row][col] = '•'
	}

	fmt.Fprintf(r.out, "  %s\n", ui.ColorDim(fmt.Sprintf("%.2f", maxY)))
	for _, row := range grid {
		fmt.Fprintf(r.out, "  |%s\n", string(row))
	}
	fmt.Fprintf(r.out, "  +%s\n", strings.Repeat("-", len(ys)))
	fmt.Fprintf(r.out, "  %s\n", ui.ColorDim(fmt.Sprintf("%.2f", minY)))
	fmt.Fprintf(r.out, "  %s\n", ui.ColorDim(fmt.Sprintf("%s .. %s", xs[0], xs[len(xs)-1])))
}

// sortByStringAsc returns a copy of t ordered by the string value of col.
// ISO dates order chronologically under this.
func sortByStringAsc(t *table.Table, col string) *table.Table {
	out := &table.Table{Columns: t.Columns, Rows: make([][]string, len(t.Rows))}
	copy(out.Rows, t.Rows)

	i := t.ColumnIndex(col)
	if i < 0 {
		return out
	}

	sort.SliceStable(out.Rows, func(a, b int) bool {
		return out.Rows[a][i] < out.Rows[b][i]
	})
	return out
}

func sample(xs []string, ys []float64, width int) ([]string, []float64) {
	if len(ys) <= width {
		return xs, ys
	}

	outX := make([]string, width)
	outY := make([]float64, width)
	for i := 0; i < width; i++ {
		j := i * (len(ys) - 1) / (width - 1)
		outX[i] = xs[j]
		outY[i] = ys[j]
	}
	return outX, outY
}
