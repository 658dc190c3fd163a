package parboiled

import (
	"fmt"
	"sort"
)

// EOI, Any and Empty are the three reserved sentinel characters
// carried by every Characters set and used by the single-character
// matcher. They use the same Unicode noncharacter code points the
// original parboiled runtime reserved for the purpose, so they can
// never collide with a real input character.
const (
	EOI   rune = '\uFFFF'
	Any   rune = '\uFFFE'
	Empty rune = '\uFFFD'
)

// IsSentinel reports whether r is one of the three reserved sentinel
// characters rather than a real input character.
func IsSentinel(r rune) bool {
	return r == EOI || r == Any || r == Empty
}

// Location is an immutable snapshot of a position in the input: the
// 0-based character index, the 1-based line and column, and the
// character found there (EOI past the end of input).
type Location struct {
	Index  int
	Line   int
	Column int
	Char   rune
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Range is a half-open [Start, End) span of character indices into an
// Input.
type Range struct{ Start, End int }

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Input is an immutable, random-access view over the characters of a
// parse's source text, extended with a virtual end-of-input sentinel
// at position Len(). It is created once per parse and lives for the
// whole parse; nothing in this package mutates it.
type Input struct {
	runes     []rune
	lineStart []int
}

// NewInput materializes s into a rune slice and builds the
// line-start index used by LocationAt. Grounded on the teacher's
// posIndex (pos.go), simplified to index by rune position directly
// since this engine's Location.Index addresses characters, not bytes.
func NewInput(s string) *Input {
	runes := []rune(s)
	lineStart := make([]int, 1, 16)
	lineStart[0] = 0
	for i, r := range runes {
		if r == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &Input{runes: runes, lineStart: lineStart}
}

// Len returns the number of characters in the input. The virtual
// end-of-input position is Len().
func (in *Input) Len() int { return len(in.runes) }

// At returns the character at position i, or EOI at or beyond Len().
func (in *Input) At(i int) rune {
	if i < 0 || i >= len(in.runes) {
		return EOI
	}
	return in.runes[i]
}

// Slice extracts the half-open character range [start, end) as a
// string.
func (in *Input) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(in.runes) {
		end = len(in.runes)
	}
	if start >= end {
		return ""
	}
	return string(in.runes[start:end])
}

// LocationAt translates a 0-based character index into a Location,
// clamping out-of-range indices to the bounds of the input.
func (in *Input) LocationAt(index int) Location {
	if index < 0 {
		index = 0
	}
	if index > len(in.runes) {
		index = len(in.runes)
	}

	lineIdx := sort.Search(len(in.lineStart), func(i int) bool {
		return in.lineStart[i] > index
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	return Location{
		Index:  index,
		Line:   lineIdx + 1,
		Column: index - in.lineStart[lineIdx] + 1,
		Char:   in.At(index),
	}
}

// StartLocation returns the Location at index 0, the entry point of
// every parse.
func (in *Input) StartLocation() Location {
	return in.LocationAt(0)
}

// Advance returns the Location n characters past loc, re-deriving
// line/column from the input rather than incrementally tracking them,
// which keeps Location trivially copyable and cheap to save/restore.
func (in *Input) Advance(loc Location, n int) Location {
	return in.LocationAt(loc.Index + n)
}
