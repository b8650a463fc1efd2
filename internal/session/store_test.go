package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowreport/internal/table"
)

func tableWith(value string) *table.Table {
	t := table.New("V")
	t.Append(value)
	return t
}

func TestPutIsWriteOnce(t *testing.T) {
	s := NewStore()

	first := tableWith("first")
	second := tableWith("second")

	assert.True(t, s.Put("k", first))
	assert.False(t, s.Put("k", second))

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "first", got.Rows[0][0])
}

func TestGetMiss(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("absent")
	assert.False(t, ok)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(0), stats.Hits)
}

func TestGetOrCompute(t *testing.T) {
	s := NewStore()
	calls := 0

	compute := func() *table.Table {
		calls++
		return tableWith("computed")
	}

	a := s.GetOrCompute("k", compute)
	b := s.GetOrCompute("k", compute)

	assert.Equal(t, 1, calls)
	assert.Same(t, a, b)
}

func TestDeleteAllowsRecompute(t *testing.T) {
	s := NewStore()

	s.Put("k", tableWith("first"))
	s.Delete("k")

	assert.True(t, s.Put("k", tableWith("second")))

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", got.Rows[0][0])
}

func TestKeysSorted(t *testing.T) {
	s := NewStore()
	s.Put("df_question_3", tableWith("c"))
	s.Put("df_question_1", tableWith("a"))
	s.Put("df_question_2", tableWith("b"))

	assert.Equal(t, []string{"df_question_1", "df_question_2", "df_question_3"}, s.Keys())
	assert.Equal(t, 3, s.Len())
}

func TestStatsCounters(t *testing.T) {
	s := NewStore()

	s.Put("k", tableWith("v"))
	s.Put("k", tableWith("w")) // kept
	s.Get("k")                 // hit
	s.Get("x")                 // miss

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Kept)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
