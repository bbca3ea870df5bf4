package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomatonFirstMatchWins(t *testing.T) {
	a := NewAutomaton().
		On(NormalMode, Exact(Char('a')), ActLeft, NoMode).
		On(NormalMode, CharRange('a', 'z'), ActRight, NoMode).
		On(NormalMode, Otherwise(), ActAbort, NoMode).
		OnAny(Exact(Char('b')), ActSave, NoMode)

	edge, ok := a.Lookup(NormalMode, Char('a'))
	require.True(t, ok)
	assert.Equal(t, ActLeft, edge.Action)

	edge, ok = a.Lookup(NormalMode, Char('b'))
	require.True(t, ok)
	assert.Equal(t, ActRight, edge.Action, "state edges come before any-state edges")

	edge, ok = a.Lookup(NormalMode, Esc)
	require.True(t, ok)
	assert.Equal(t, ActAbort, edge.Action)

	edge, ok = a.Lookup(InsertMode, Char('b'))
	require.True(t, ok)
	assert.Equal(t, ActSave, edge.Action)

	_, ok = a.Lookup(InsertMode, Char('c'))
	assert.False(t, ok)

	assert.Len(t, a.Edges(NormalMode), 3)
}

func TestLayeredFallsThrough(t *testing.T) {
	local := NewAutomaton().OnKey(NormalMode, ActDeleteChar, NoMode, Char('x'))
	global := NewAutomaton().
		OnAny(Exact(Char('x')), ActUndo, NoMode).
		OnAny(Exact(Ctrl('s')), ActSave, NoMode)
	graph := Layered{local, global}

	edge, ok := graph.Lookup(NormalMode, Char('x'))
	require.True(t, ok)
	assert.Equal(t, ActDeleteChar, edge.Action)

	edge, ok = graph.Lookup(InsertMode, Char('x'))
	require.True(t, ok)
	assert.Equal(t, ActUndo, edge.Action)

	edge, ok = graph.Lookup(VisualMode, Ctrl('s'))
	require.True(t, ok)
	assert.Equal(t, ActSave, edge.Action)

	_, ok = graph.Lookup(NormalMode, Char('q'))
	assert.False(t, ok)
}

func TestControllerReceive(t *testing.T) {
	a := NewAutomaton().
		OnKey(NormalMode, ActInsertBefore, InsertMode, Char('i')).
		OnKey(NormalMode, ActLeft, NoMode, Char('h')).
		OnKey(NormalMode, ActSearchForward, SearchMode, Char('/')).
		OnKey(InsertMode, ActLeaveEdit, NormalMode, Esc)

	var ran []Action
	override := NoMode
	c := NewController(a, NormalMode, func(action Action, _ Key) Mode {
		ran = append(ran, action)
		return override
	})

	t.Run("unbound keys are dropped", func(t *testing.T) {
		assert.False(t, c.Receive(Char('q')))
		assert.Equal(t, NormalMode, c.State())
		assert.Empty(t, ran)
	})

	t.Run("NoMode edge keeps the state", func(t *testing.T) {
		assert.True(t, c.Receive(Char('h')))
		assert.Equal(t, NormalMode, c.State())
	})

	t.Run("edge target is followed", func(t *testing.T) {
		assert.True(t, c.Receive(Char('i')))
		assert.Equal(t, InsertMode, c.State())
		assert.True(t, c.Receive(Esc))
		assert.Equal(t, NormalMode, c.State())
	})

	t.Run("effect result overrides the edge", func(t *testing.T) {
		override = NormalMode
		assert.True(t, c.Receive(Char('/')))
		assert.Equal(t, NormalMode, c.State())
		override = NoMode
	})

	assert.Equal(t, []Action{ActLeft, ActInsertBefore, ActLeaveEdit, ActSearchForward}, ran)

	c.SetState(NoMode)
	assert.Equal(t, NormalMode, c.State())
	c.SetState(VisualMode)
	assert.Equal(t, VisualMode, c.State())
}

func TestEveryBoundActionHasAnEffect(t *testing.T) {
	local, global := localBindings(), globalBindings()
	for _, edges := range local.edges {
		for _, edge := range edges {
			_, ok := effects[edge.Action]
			assert.True(t, ok, "no effect for %s", edge.Action)
		}
	}
	for _, edge := range global.any {
		_, ok := effects[edge.Action]
		assert.True(t, ok, "no effect for %s", edge.Action)
	}
}
