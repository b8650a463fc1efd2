package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tableWithRows(n int) *Table {
	t := New("N")
	for i := 1; i <= n; i++ {
		t.Append(fmt.Sprintf("%d", i))
	}
	return t
}

func TestPagerTwelveRows(t *testing.T) {
	p := NewPager(tableWithRows(12), 5)

	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, 5, p.Page(1).RowCount())
	assert.Equal(t, 5, p.Page(2).RowCount())
	assert.Equal(t, 2, p.Page(3).RowCount())

	// The legacy floor bound permitted an empty page 4; the ceiling bound
	// clamps the request back to the last real page.
	assert.Equal(t, 2, p.Page(4).RowCount())
	assert.Equal(t, 3, p.Clamp(4))
}

func TestPagerExactMultiple(t *testing.T) {
	p := NewPager(tableWithRows(10), 5)

	assert.Equal(t, 2, p.TotalPages())
	assert.Equal(t, 5, p.Page(2).RowCount())
	assert.Equal(t, 2, p.Clamp(3))
}

func TestPagerEmptyTable(t *testing.T) {
	p := NewPager(New("N"), 5)

	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 0, p.Page(1).RowCount())
}

func TestPagerPageContents(t *testing.T) {
	p := NewPager(tableWithRows(12), 5)

	page2 := p.Page(2)
	assert.Equal(t, "6", page2.Rows[0][0])
	assert.Equal(t, "10", page2.Rows[4][0])

	page3 := p.Page(3)
	assert.Equal(t, "11", page3.Rows[0][0])
	assert.Equal(t, "12", page3.Rows[1][0])
}

func TestPagerClampLowerBound(t *testing.T) {
	p := NewPager(tableWithRows(12), 5)
	assert.Equal(t, 1, p.Clamp(0))
	assert.Equal(t, 1, p.Clamp(-3))
}

func TestPagerDefaultSize(t *testing.T) {
	p := NewPager(tableWithRows(12), 0)
	assert.Equal(t, DefaultPageSize, p.PageSize())
}
