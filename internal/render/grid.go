// Package render draws result tables and charts on the terminal. It stands
// in for the hosted dashboard widgets: paginated grids instead of data
// grids, bar and line charts instead of plotted figures.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"snowreport/internal/table"
	"snowreport/internal/ui"
)

// Renderer draws tables and charts to a writer.
type Renderer struct {
	out      io.Writer
	pageSize int
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, pageSize int) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if pageSize <= 0 {
		pageSize = table.DefaultPageSize
	}
	return &Renderer{out: out, pageSize: pageSize}
}

// Grid renders one page of t as a bordered table with a page footer.
func (r *Renderer) Grid(t *table.Table, page int) {
	if t.Empty() {
		fmt.Fprintf(r.out, "%s\n", ui.ColorWarning("(no rows)"))
		return
	}

	pager := table.NewPager(t, r.pageSize)
	page = pager.Clamp(page)
	slice := pager.Page(page)

	w := tablewriter.NewWriter(r.out)
	w.SetHeader(t.Columns)
	w.SetBorder(false)
	w.SetAutoWrapText(false)
	w.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range slice.Rows {
		w.Append(row)
	}
	w.Render()

	fmt.Fprintf(r.out, "%s\n", ui.ColorDim(fmt.Sprintf(
		"Page %d of %d (%d rows)", page, pager.TotalPages(), t.RowCount())))
}

// Titled renders a section title followed by the first page of t.
func (r *Renderer) Titled(title string, t *table.Table) {
	fmt.Fprintf(r.out, "\n%s\n", ui.ColorBold(title))
	r.Grid(t, 1)
}

// Browse pages through t interactively until the user is done. Without a
// terminal it renders the first page and returns.
func (r *Renderer) Browse(title string, t *table.Table) error {
	fmt.Fprintf(r.out, "\n%s\n", ui.ColorBold(title))

	if t.Empty() {
		fmt.Fprintf(r.out, "%s\n", ui.ColorWarning("(no rows)"))
		return nil
	}

	pager := table.NewPager(t, r.pageSize)
	page := 1
	r.Grid(t, page)

	if !ui.IsTerminal() || pager.TotalPages() == 1 {
		return nil
	}

	for {
		choice, err := ui.Select("Navigate:", []string{"Next page", "Previous page", "Jump to page", "Done"})
		if err != nil {
			return err
		}

		switch choice {
		case "Next page":
			page = pager.Clamp(page + 1)
		case "Previous page":
			page = pager.Clamp(page - 1)
		case "Jump to page":
			page, err = ui.PageNumber(page, pager.TotalPages())
			if err != nil {
				return err
			}
		case "Done":
			return nil
		}

		r.Grid(t, page)
	}
}
