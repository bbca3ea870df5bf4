package core

// Edge is one rule of a state: when Matcher accepts the key, run Action and
// move to Next. A Next of NoMode keeps the current state.
type Edge struct {
	Matcher Matcher
	Action  Action
	Next    Mode
}

// EdgeSource resolves the edge taken for a key in a state.
type EdgeSource interface {
	Lookup(state Mode, key Key) (Edge, bool)
}

// Automaton maps each state to an ordered edge list. Registration order is
// priority order: the first matching edge wins.
//
// The graph is built once and only read afterwards, so one Automaton can be
// shared by several controllers.
type Automaton struct {
	edges map[Mode][]Edge
	any   []Edge // consulted after the state's own edges, for every state
}

func NewAutomaton() *Automaton {
	return &Automaton{edges: make(map[Mode][]Edge)}
}

// On appends an edge to state.
func (a *Automaton) On(state Mode, m Matcher, action Action, next Mode) *Automaton {
	a.edges[state] = append(a.edges[state], Edge{Matcher: m, Action: action, Next: next})
	return a
}

// OnKey is On with an Exact matcher for each key.
func (a *Automaton) OnKey(state Mode, action Action, next Mode, keys ...Key) *Automaton {
	for _, k := range keys {
		a.On(state, Exact(k), action, next)
	}
	return a
}

// OnAny registers an edge that applies in every state, after the state's own
// edges.
func (a *Automaton) OnAny(m Matcher, action Action, next Mode) *Automaton {
	a.any = append(a.any, Edge{Matcher: m, Action: action, Next: next})
	return a
}

func (a *Automaton) Lookup(state Mode, key Key) (Edge, bool) {
	for _, edge := range a.edges[state] {
		if edge.Matcher.Match(key) {
			return edge, true
		}
	}
	for _, edge := range a.any {
		if edge.Matcher.Match(key) {
			return edge, true
		}
	}
	return Edge{}, false
}

// Edges returns the edges registered for state, in priority order.
func (a *Automaton) Edges(state Mode) []Edge {
	return a.edges[state]
}

// Layered combines graphs in priority order: a miss in one falls through to
// the next, and the first graph with a matching edge wins.
type Layered []EdgeSource

func (l Layered) Lookup(state Mode, key Key) (Edge, bool) {
	for _, g := range l {
		if edge, ok := g.Lookup(state, key); ok {
			return edge, true
		}
	}
	return Edge{}, false
}
