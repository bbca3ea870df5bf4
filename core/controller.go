package core

// Runner executes the effect bound to an action and returns the state it
// wants to move to, or NoMode to accept the edge's target.
type Runner func(action Action, key Key) Mode

// Controller feeds keys through an automaton and tracks the current state.
type Controller struct {
	graph EdgeSource
	state Mode
	run   Runner
}

func NewController(graph EdgeSource, initial Mode, run Runner) *Controller {
	return &Controller{graph: graph, state: initial, run: run}
}

// Receive handles one key. Keys without a matching edge are dropped and the
// state is left as is; the return value reports whether an edge fired.
func (c *Controller) Receive(key Key) bool {
	edge, ok := c.graph.Lookup(c.state, key)
	if !ok {
		return false
	}

	next := c.run(edge.Action, key)
	if next == NoMode {
		next = edge.Next
	}
	if next != NoMode {
		c.state = next
	}
	return true
}

func (c *Controller) State() Mode { return c.state }

// SetState forces the state, e.g. when the host switches modes directly.
func (c *Controller) SetState(m Mode) {
	if m != NoMode {
		c.state = m
	}
}
