package parboiled

import "fmt"

// charMatcher matches a single specific character, or one of the
// three sentinel characters with special meaning (spec.md §4.2).
// Grounded on parboiled's CharMatcher
// (original_source/src/org/parboiled/CharMatcher.java).
type charMatcher struct {
	matcherBase
	char rune
}

// Char returns a matcher for the literal character r.
func Char(r rune) Matcher { return &charMatcher{char: r} }

// AnyChar matches any single real character, failing at end-of-input.
func AnyChar() Matcher { return &charMatcher{char: Any} }

// EmptyMatch always succeeds without consuming input.
func EmptyMatch() Matcher { return &charMatcher{char: Empty} }

// EndOfInput succeeds only at the virtual end-of-input position.
func EndOfInput() Matcher { return &charMatcher{char: EOI} }

func (m *charMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	switch m.char {
	case EOI:
		return "EOI"
	case Any:
		return "ANY"
	case Empty:
		return "EMPTY"
	default:
		return "'" + string(m.char) + "'"
	}
}

func (m *charMatcher) StarterSet() Characters {
	if m.char == Empty {
		return OfRune(Empty)
	}
	return OfRune(m.char)
}

func (m *charMatcher) Match(ctx *Context) bool {
	switch m.char {
	case Empty:
		ctx.createNode()
		return true
	case Any:
		if ctx.current.Char == EOI {
			ctx.recordFailure()
			return false
		}
		ctx.advance(1)
		ctx.createNode()
		return true
	case EOI:
		if ctx.current.Char != EOI {
			ctx.recordFailure()
			return false
		}
		ctx.createNode()
		return true
	default:
		if ctx.current.Char != m.char {
			ctx.recordFailure()
			return false
		}
		ctx.advance(1)
		ctx.createNode()
		return true
	}
}

// classMatcher matches any single character that is a member of a
// Characters set (spec.md §4.2).
type classMatcher struct {
	matcherBase
	set Characters
}

// Class returns a matcher for any character in cs.
func Class(cs Characters) Matcher { return &classMatcher{set: cs} }

func (m *classMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return m.set.String()
}

func (m *classMatcher) StarterSet() Characters { return m.set }

func (m *classMatcher) Match(ctx *Context) bool {
	if !m.set.Contains(ctx.current.Char) || ctx.current.Char == EOI {
		ctx.recordFailure()
		return false
	}
	ctx.advance(1)
	ctx.createNode()
	return true
}

// stringMatcher matches a fixed sequence of characters in full
// (spec.md §4.2). An empty sequence behaves like the empty-match
// sentinel: it always succeeds and consumes nothing.
type stringMatcher struct {
	matcherBase
	literal []rune
}

// Literal returns a matcher for the exact string s.
func Literal(s string) Matcher { return &stringMatcher{literal: []rune(s)} }

func (m *stringMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return fmt.Sprintf("%q", string(m.literal))
}

func (m *stringMatcher) StarterSet() Characters {
	if len(m.literal) == 0 {
		return OfRune(Empty)
	}
	return OfRune(m.literal[0])
}

func (m *stringMatcher) Match(ctx *Context) bool {
	for i, r := range m.literal {
		if ctx.input.At(ctx.current.Index+i) != r {
			ctx.recordFailureAt(ctx.input.LocationAt(ctx.current.Index + i))
			return false
		}
	}
	ctx.advance(len(m.literal))
	ctx.createNode()
	return true
}
