package parboiled

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharacters_Contains(t *testing.T) {
	cs := OfRange('a', 'z')
	assert.True(t, cs.Contains('m'))
	assert.False(t, cs.Contains('M'))
	assert.False(t, cs.Contains(EOI))
}

func TestCharacters_Union(t *testing.T) {
	digits := OfRange('0', '9')
	letters := OfRange('a', 'z')
	both := digits.Union(letters)

	assert.True(t, both.Contains('5'))
	assert.True(t, both.Contains('q'))
	assert.False(t, both.Contains('Q'))
}

func TestCharacters_Intersect(t *testing.T) {
	az := OfRange('a', 'm')
	mz := OfRange('g', 'z')
	overlap := az.Intersect(mz)

	assert.True(t, overlap.Contains('h'))
	assert.False(t, overlap.Contains('b'))
	assert.False(t, overlap.Contains('x'))
}

func TestCharacters_Complement(t *testing.T) {
	vowels := OfRunes('a', 'e', 'i', 'o', 'u')
	consonants := vowels.Complement()

	assert.False(t, consonants.Contains('a'))
	assert.True(t, consonants.Contains('b'))
}

func TestCharacters_SentinelsAreDisjointFromBitmap(t *testing.T) {
	cs := OfRune(EOI)
	assert.True(t, cs.Contains(EOI))
	assert.False(t, cs.Contains('a'))

	any := OfRune(Any)
	assert.True(t, any.Contains(Any))
	assert.False(t, any.Contains(EOI))
}

func TestCharacters_HasEmpty(t *testing.T) {
	empty := OfRune(Empty)
	assert.True(t, empty.HasEmpty())
	assert.False(t, OfRune('a').HasEmpty())
}

func TestCharacters_IsSubsetOf(t *testing.T) {
	az := OfRange('a', 'z')
	az09 := az.Union(OfRange('0', '9'))
	assert.True(t, az.IsSubsetOf(az09))
	assert.False(t, az09.IsSubsetOf(az))
}

func TestCharacters_String(t *testing.T) {
	cs := OfRange('a', 'c').Union(OfRune(EOI))
	assert.Equal(t, "['a'-'c']+EOI", cs.String())
}
