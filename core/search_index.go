package core

// CacheLine holds the incremental match state of one buffer line.
// results[k] lists the columns where word[:k+1] starts matching.
type CacheLine struct {
	word    []Cell
	results [][]int
}

// Rollback keeps the levels shared with newWord and drops the rest.
// It returns the number of levels kept.
func (cl *CacheLine) Rollback(newWord []Cell) int {
	n := 0
	for n < len(cl.word) && n < len(newWord) && cl.word[n] == newWord[n] {
		n++
	}
	cl.word = cl.word[:n]
	cl.results = cl.results[:n]
	return n
}

// IncSearch extends the cached query by next. Only the starts that survived
// the previous level are checked, so each extension is linear in the number
// of surviving candidates rather than in line length times query length.
func (cl *CacheLine) IncSearch(next Cell, line Line) {
	var level []int
	n := len(cl.word) + 1

	if n == 1 {
		for i, c := range line {
			if foldEqual(c, next) {
				level = append(level, i)
			}
		}
	} else {
		for _, i := range cl.results[n-2] {
			if j := i + n - 1; j < len(line) && foldEqual(line[j], next) {
				level = append(level, i)
			}
		}
	}

	cl.word = append(cl.word, next)
	cl.results = append(cl.results, level)
}

// Result returns the starts of full-query matches, nil for an empty query.
func (cl *CacheLine) Result() []int {
	if len(cl.results) == 0 {
		return nil
	}
	return cl.results[len(cl.results)-1]
}

// Depth is the number of query characters this line is current for.
func (cl *CacheLine) Depth() int { return len(cl.word) }

// SearchIndex is a lazily maintained per-line cache of matches for one
// case-insensitive query. It holds exactly one CacheLine per buffer line;
// lines are only brought up to date when queried.
type SearchIndex struct {
	word  []Cell
	lines []CacheLine
}

func NewSearchIndex(lineCount int) *SearchIndex {
	return &SearchIndex{lines: make([]CacheLine, lineCount)}
}

// SetQuery changes the query. Cached levels are reused per line on the next
// lookup through their common prefix with the new query.
func (s *SearchIndex) SetQuery(q string) {
	s.word = s.word[:0]
	for _, r := range q {
		s.word = append(s.word, Cell(r))
	}
}

func (s *SearchIndex) Query() string { return CellsString(s.word) }

// QueryLen is the query length in cells.
func (s *SearchIndex) QueryLen() int { return len(s.word) }

func (s *SearchIndex) Len() int { return len(s.lines) }

// InsertLine adds an empty cache slot at row, mirroring a buffer insertion.
func (s *SearchIndex) InsertLine(row int) {
	s.lines = append(s.lines, CacheLine{})
	copy(s.lines[row+1:], s.lines[row:])
	s.lines[row] = CacheLine{}
}

// RemoveLine drops the cache slot at row, mirroring a buffer removal.
func (s *SearchIndex) RemoveLine(row int) {
	s.lines = append(s.lines[:row], s.lines[row+1:]...)
}

// Invalidate forgets the cached levels of row after its content changed.
func (s *SearchIndex) Invalidate(row int) {
	s.lines[row] = CacheLine{}
}

// Reset discards every cached level and resizes the cache to lineCount.
func (s *SearchIndex) Reset(lineCount int) {
	s.lines = make([]CacheLine, lineCount)
}

// Result returns the match columns of row, bringing it current first.
func (s *SearchIndex) Result(buf Buffer, row int) []int {
	if len(s.word) == 0 || row < 0 || row >= len(s.lines) {
		return nil
	}
	cl := &s.lines[row]
	n := cl.Rollback(s.word)
	line := buf.Line(row)
	for _, c := range s.word[n:] {
		cl.IncSearch(c, line)
	}
	return cl.Result()
}

// UpdateCache eagerly brings rows [from, to) current, typically the visible ones.
func (s *SearchIndex) UpdateCache(buf Buffer, from, to int) {
	from = max(from, 0)
	to = min(to, len(s.lines))
	for row := from; row < to; row++ {
		s.Result(buf, row)
	}
}

// Next finds the nearest match strictly after cur, wrapping around the end
// of the buffer. Only the visited lines are brought current.
func (s *SearchIndex) Next(buf Buffer, cur Cursor) (Cursor, bool) {
	if len(s.word) == 0 {
		return cur, false
	}
	n := len(s.lines)
	for i := 0; i <= n; i++ {
		row := (cur.Row + i) % n
		res := s.Result(buf, row)
		if len(res) == 0 {
			continue
		}
		switch i {
		case 0:
			for _, col := range res {
				if col > cur.Col {
					return Cursor{Row: row, Col: col}, true
				}
			}
		case n:
			if res[0] <= cur.Col {
				return Cursor{Row: row, Col: res[0]}, true
			}
		default:
			return Cursor{Row: row, Col: res[0]}, true
		}
	}
	return cur, false
}

// Prev finds the nearest match strictly before cur, wrapping around the
// start of the buffer.
func (s *SearchIndex) Prev(buf Buffer, cur Cursor) (Cursor, bool) {
	if len(s.word) == 0 {
		return cur, false
	}
	n := len(s.lines)
	for i := 0; i <= n; i++ {
		row := ((cur.Row-i)%n + n) % n
		res := s.Result(buf, row)
		if len(res) == 0 {
			continue
		}
		last := res[len(res)-1]
		switch i {
		case 0:
			for k := len(res) - 1; k >= 0; k-- {
				if res[k] < cur.Col {
					return Cursor{Row: row, Col: res[k]}, true
				}
			}
		case n:
			if last >= cur.Col {
				return Cursor{Row: row, Col: last}, true
			}
		default:
			return Cursor{Row: row, Col: last}, true
		}
	}
	return cur, false
}
