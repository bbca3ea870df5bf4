package core

import "fmt"

func searchPrompt(backward bool) string {
	if backward {
		return "?"
	}
	return "/"
}

func searchStart(backward bool) Effect {
	return func(e *editor, _ Key) Mode {
		e.count = 0
		e.searchBackward = backward
		e.searchOrigin = e.cursor
		e.searchInput = nil
		e.UpdateCommand(searchPrompt(backward)) // Show prompt
		return NoMode
	}
}

// preview moves the cursor to the nearest match of the typed query while it
// is being typed.
func (e *editor) preview() {
	e.search.SetQuery(string(e.searchInput))
	e.highlight = len(e.searchInput) > 0
	e.UpdateCommand(searchPrompt(e.searchBackward) + string(e.searchInput))

	e.cursor = e.searchOrigin
	if c, ok := e.find(e.searchOrigin, e.searchBackward); ok {
		e.cursor = c
	}
}

func (e *editor) find(from Cursor, backward bool) (Cursor, bool) {
	if backward {
		return e.search.Prev(e.buffer, from)
	}
	return e.search.Next(e.buffer, from)
}

func searchInput(e *editor, k Key) Mode {
	e.searchInput = append(e.searchInput, k.Rune)
	e.preview()
	return NoMode
}

func searchBackspace(e *editor, k Key) Mode {
	if len(e.searchInput) == 0 {
		searchCancel(e)
		return NormalMode
	}
	e.searchInput = e.searchInput[:len(e.searchInput)-1]
	e.preview()
	return NoMode
}

// searchCancel restores the cursor and the previous query.
func searchCancel(e *editor) {
	e.cursor = e.searchOrigin
	e.searchInput = nil
	e.search.SetQuery(e.lastQuery)
	e.highlight = false
	e.UpdateCommand("")
}

// searchAccept jumps to the first match of the query. An empty prompt
// repeats the previous query.
func searchAccept(e *editor, _ Key) Mode {
	query := string(e.searchInput)
	if query == "" {
		query = e.lastQuery
	}
	e.searchInput = nil
	e.UpdateCommand("")
	e.cursor = e.searchOrigin

	if query == "" {
		return NoMode
	}
	e.lastQuery = query
	e.search.SetQuery(query)
	e.highlight = true

	c, ok := e.find(e.searchOrigin, e.searchBackward)
	if !ok {
		e.DispatchError(ErrSearchFailedId, fmt.Errorf("%w: %s", ErrNoMatch, query))
		return NoMode
	}
	e.cursor = c.ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	return NoMode
}

// searchRepeat jumps count matches in the search direction, or against it
// when reverse is set.
func searchRepeat(reverse bool) Effect {
	return func(e *editor, _ Key) Mode {
		count := e.takeCount()
		if e.search.QueryLen() == 0 {
			e.DispatchError(ErrSearchFailedId, ErrNoMatch)
			return NoMode
		}
		e.highlight = true

		backward := e.searchBackward != reverse
		c := e.cursor
		for range count {
			next, ok := e.find(c, backward)
			if !ok {
				e.DispatchError(ErrSearchFailedId, fmt.Errorf("%w: %s", ErrNoMatch, e.search.Query()))
				return NoMode
			}
			if backward && !next.Less(c) {
				e.DispatchMessage(SearchWrappedBackMessage)
			} else if !backward && !c.Less(next) {
				e.DispatchMessage(SearchWrappedMessage)
			}
			c = next
		}
		e.cursor = c.ClampNormal(e.buffer)
		e.preferred = e.cursor.Col
		return NoMode
	}
}
