package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheLineIncSearch(t *testing.T) {
	line := LineFromString("ababa")
	var cl CacheLine

	want := map[string][]int{
		"a":     {0, 2, 4},
		"ab":    {0, 2},
		"aba":   {0, 2},
		"abab":  {0},
		"ababa": {0},
	}
	for _, q := range []string{"a", "ab", "aba", "abab", "ababa"} {
		cl.IncSearch(Cell([]rune(q)[len(q)-1]), line)
		assert.Equal(t, want[q], cl.Result(), q)
		assert.Equal(t, len(q), cl.Depth())
	}

	cl.IncSearch('x', line)
	assert.Empty(t, cl.Result())
}

func TestCacheLineRollback(t *testing.T) {
	line := LineFromString("abcabd")
	var cl CacheLine
	for _, c := range CellsFromString("abc") {
		cl.IncSearch(c, line)
	}
	assert.Equal(t, []int{0}, cl.Result())

	kept := cl.Rollback(CellsFromString("abd"))
	assert.Equal(t, 2, kept)
	assert.Equal(t, []int{0, 3}, cl.Result())

	cl.IncSearch('d', line)
	assert.Equal(t, []int{3}, cl.Result())

	assert.Equal(t, 0, cl.Rollback(nil))
	assert.Nil(t, cl.Result())
}

func TestSearchIndexResult(t *testing.T) {
	buf := NewBufferFromLines([]string{"Foo foo", "bar", "FOO"})
	s := NewSearchIndex(buf.LineCount())

	assert.Nil(t, s.Result(buf, 0), "empty query")

	s.SetQuery("foo")
	assert.Equal(t, []int{0, 4}, s.Result(buf, 0))
	assert.Empty(t, s.Result(buf, 1))
	assert.Equal(t, []int{0}, s.Result(buf, 2))
	assert.Nil(t, s.Result(buf, 3), "out of range")

	s.SetQuery("fo")
	assert.Equal(t, []int{0, 4}, s.Result(buf, 0), "shorter query reuses cached levels")
	assert.Equal(t, "fo", s.Query())
	assert.Equal(t, 2, s.QueryLen())
}

func TestSearchIndexDoesNotMatchAcrossLines(t *testing.T) {
	buf := NewBufferFromLines([]string{"ab", "cd"})
	s := NewSearchIndex(buf.LineCount())
	s.SetQuery("bc")

	s.UpdateCache(buf, 0, 10)
	assert.Empty(t, s.Result(buf, 0))
	assert.Empty(t, s.Result(buf, 1))
}

func TestSearchIndexNextPrev(t *testing.T) {
	buf := NewBufferFromLines([]string{"foo", "bar foo", "foo"})
	s := NewSearchIndex(buf.LineCount())
	s.SetQuery("foo")

	next := func(c Cursor) Cursor {
		got, ok := s.Next(buf, c)
		assert.True(t, ok)
		return got
	}
	prev := func(c Cursor) Cursor {
		got, ok := s.Prev(buf, c)
		assert.True(t, ok)
		return got
	}

	assert.Equal(t, Cursor{1, 4}, next(Cursor{0, 0}))
	assert.Equal(t, Cursor{2, 0}, next(Cursor{1, 4}))
	assert.Equal(t, Cursor{0, 0}, next(Cursor{2, 0}), "wraps to the top")

	assert.Equal(t, Cursor{2, 0}, prev(Cursor{0, 0}), "wraps to the bottom")
	assert.Equal(t, Cursor{1, 4}, prev(Cursor{2, 0}))
	assert.Equal(t, Cursor{0, 0}, prev(Cursor{1, 2}))
}

func TestSearchIndexSingleMatchWrapsOntoItself(t *testing.T) {
	buf := NewBufferFromLines([]string{"one", "two"})
	s := NewSearchIndex(buf.LineCount())
	s.SetQuery("two")

	got, ok := s.Next(buf, Cursor{1, 0})
	assert.True(t, ok)
	assert.Equal(t, Cursor{1, 0}, got)

	got, ok = s.Prev(buf, Cursor{1, 0})
	assert.True(t, ok)
	assert.Equal(t, Cursor{1, 0}, got)

	s.SetQuery("zzz")
	_, ok = s.Next(buf, Cursor{})
	assert.False(t, ok)

	s.SetQuery("")
	_, ok = s.Prev(buf, Cursor{})
	assert.False(t, ok)
}

func TestSearchIndexTracksLines(t *testing.T) {
	buf := NewBufferFromLines([]string{"a", "b"})
	s := NewSearchIndex(buf.LineCount())
	s.SetQuery("b")
	assert.Equal(t, []int{0}, s.Result(buf, 1))

	s.InsertLine(0)
	assert.Equal(t, 3, s.Len())
	s.RemoveLine(2)
	s.Invalidate(1)
	assert.Equal(t, 2, s.Len())

	s.Reset(5)
	assert.Equal(t, 5, s.Len())
}
