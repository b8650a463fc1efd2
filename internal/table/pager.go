package table

// Pager slices a table into fixed-size pages. Page numbers are 1-based and
// clamped to [1, TotalPages]. The page count is a ceiling divide, so an
// exact multiple of the page size has no empty trailing page.
type Pager struct {
	table    *Table
	pageSize int
}

// DefaultPageSize matches the dashboard's grid size.
const DefaultPageSize = 5

// NewPager creates a pager over t. A non-positive size falls back to the
// default.
func NewPager(t *Table, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{table: t, pageSize: pageSize}
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// TotalPages returns the number of pages, at least 1 so an empty table still
// renders a single empty page.
func (p *Pager) TotalPages() int {
	n := p.table.RowCount()
	if n == 0 {
		return 1
	}
	return (n + p.pageSize - 1) / p.pageSize
}

// Clamp bounds a requested page number to the valid range.
func (p *Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if last := p.TotalPages(); page > last {
		return last
	}
	return page
}

// Page returns the rows of the requested page as a table sharing the
// original columns.
func (p *Pager) Page(page int) *Table {
	page = p.Clamp(page)

	start := (page - 1) * p.pageSize
	end := start + p.pageSize

	n := p.table.RowCount()
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}

	return &Table{Columns: p.table.Columns, Rows: p.table.Rows[start:end]}
}
