package core

import (
	"fmt"
	"strings"
)

// --- KeyKind, Key, Matcher ---

// KeyKind tags the variant held by a Key
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyChar            // printable scalar in Rune, '\n' for Enter and '\t' for Tab
	KeyCtrl            // Ctrl plus Rune
	KeyAlt             // Alt plus Rune
	KeyFunction        // F<N>

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyEscape
)

// Key is a single input event.
type Key struct {
	Kind KeyKind
	Rune rune // set for KeyChar, KeyCtrl and KeyAlt
	N    int  // set for KeyFunction
}

func Char(r rune) Key     { return Key{Kind: KeyChar, Rune: r} }
func Ctrl(r rune) Key     { return Key{Kind: KeyCtrl, Rune: r} }
func Alt(r rune) Key      { return Key{Kind: KeyAlt, Rune: r} }
func Function(n int) Key  { return Key{Kind: KeyFunction, N: n} }
func Named(k KeyKind) Key { return Key{Kind: k} }

var (
	Up        = Named(KeyUp)
	Down      = Named(KeyDown)
	Left      = Named(KeyLeft)
	Right     = Named(KeyRight)
	Home      = Named(KeyHome)
	End       = Named(KeyEnd)
	PageUp    = Named(KeyPageUp)
	PageDown  = Named(KeyPageDown)
	Insert    = Named(KeyInsert)
	Delete    = Named(KeyDelete)
	Backspace = Named(KeyBackspace)
	Esc       = Named(KeyEscape)
	Enter     = Char('\n')
	Tab       = Char('\t')
)

// String returns a string representation of a Key
func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		switch k.Rune {
		case '\n':
			return "Enter"
		case '\t':
			return "Tab"
		case ' ':
			return "Space"
		}
		return string(k.Rune)
	case KeyCtrl:
		return "Ctrl+" + string(k.Rune)
	case KeyAlt:
		return "Alt+" + string(k.Rune)
	case KeyFunction:
		return fmt.Sprintf("F%d", k.N)
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyInsert:
		return "Insert"
	case KeyDelete:
		return "Delete"
	case KeyBackspace:
		return "Backspace"
	case KeyEscape:
		return "Escape"
	}
	return "Unknown"
}

// ParseKey reads the notation produced by Key.String, e.g. "Ctrl+s" or "F5".
func ParseKey(s string) (Key, error) {
	switch s {
	case "Enter":
		return Enter, nil
	case "Tab":
		return Tab, nil
	case "Space":
		return Char(' '), nil
	}
	for kind := KeyUp; kind <= KeyEscape; kind++ {
		if Named(kind).String() == s {
			return Named(kind), nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "Ctrl+"); ok && len([]rune(rest)) == 1 {
		return Ctrl([]rune(rest)[0]), nil
	}
	if rest, ok := strings.CutPrefix(s, "Alt+"); ok && len([]rune(rest)) == 1 {
		return Alt([]rune(rest)[0]), nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "F%d", &n); err == nil && n > 0 {
		return Function(n), nil
	}
	if r := []rune(s); len(r) == 1 {
		return Char(r[0]), nil
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}

type matcherKind int

const (
	matchExact matcherKind = iota
	matchCharRange
	matchOtherwise
)

// Matcher is the left-hand side of an Edge. Matchers only exist inside the
// automaton; they are never delivered as input.
type Matcher struct {
	kind   matcherKind
	key    Key
	lo, hi rune
}

// Exact matches the identical key.
func Exact(k Key) Matcher { return Matcher{kind: matchExact, key: k} }

// CharRange matches Char(c) for lo <= c <= hi.
func CharRange(lo, hi rune) Matcher { return Matcher{kind: matchCharRange, lo: lo, hi: hi} }

// Otherwise matches any key.
func Otherwise() Matcher { return Matcher{kind: matchOtherwise} }

func (m Matcher) Match(k Key) bool {
	switch m.kind {
	case matchExact:
		return m.key == k
	case matchCharRange:
		return k.Kind == KeyChar && m.lo <= k.Rune && k.Rune <= m.hi
	case matchOtherwise:
		return true
	}
	return false
}

func (m Matcher) String() string {
	switch m.kind {
	case matchCharRange:
		return fmt.Sprintf("[%c-%c]", m.lo, m.hi)
	case matchOtherwise:
		return "*"
	}
	return m.key.String()
}
