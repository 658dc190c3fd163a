package parboiled

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, start Matcher, input string) *Result {
	t.Helper()
	res, diag, err := Parse(start, input)
	require.NoError(t, err)
	require.Nil(t, diag, "unexpected parse failure: %v", diag)
	return res
}

// S1: a sequence of two characters matches and produces a flat tree
// of the two leaves under the rule's own node.
func TestSequence_TwoCharacters(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Seq(Char('a'), Char('b')))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "ab")
	require.Equal(t, "S", res.Tree.Label)
	assert.Equal(t, NewRange(0, 2), res.Tree.Range)
	require.Len(t, res.Tree.Children, 2)
	assert.Equal(t, "'a'", res.Tree.Children[0].Label)
	assert.Equal(t, "'b'", res.Tree.Children[1].Label)
}

// S2: an ordered choice commits to the first matching alternative and
// contributes only that alternative's own node, with no extra
// wrapping level for the choice itself.
func TestChoice_CommitsToFirstMatch(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Choice(Char('a'), Char('b')))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "b")
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, "'b'", res.Tree.Children[0].Label)
}

// S3: zero-or-more over an empty input always succeeds with no
// children and a zero-width range.
func TestZeroOrMore_EmptyInput(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", ZeroOrMore(Char('a')))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "")
	assert.Empty(t, res.Tree.Children)
	assert.Equal(t, NewRange(0, 0), res.Tree.Range)
}

// S4: a positive lookahead that succeeds contributes no node of its
// own; only the character it guards shows up as a child.
func TestAnd_ContributesNoNode(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Seq(And(Char('a')), Char('a')))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "a")
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, "'a'", res.Tree.Children[0].Label)
}

// S5: a negative lookahead blocks a match it should, and otherwise
// lets the sequence proceed, again contributing no node.
func TestNot_BlocksMatchingAlternative(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Seq(Not(Char('b')), AnyChar()))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	_, diag, err := Parse(start, "b")
	require.NoError(t, err)
	require.NotNil(t, diag)

	res := mustParse(t, start, "a")
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, "ANY", res.Tree.Children[0].Label)
}

// S6: repeating a grouped sequence produces one child node per
// iteration, each one a genuine Sequence node (since the repeated
// body is not itself a named rule), rather than a single flattened
// list of characters.
func TestZeroOrMore_OfSequence_ProducesOneNodePerIteration(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", ZeroOrMore(Seq(Char('a'), Char('b'))))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "abab")
	require.Len(t, res.Tree.Children, 2)
	for _, c := range res.Tree.Children {
		assert.Equal(t, "Sequence", c.Label)
		assert.Len(t, c.Children, 2)
	}
	assert.Equal(t, NewRange(0, 2), res.Tree.Children[0].Range)
	assert.Equal(t, NewRange(2, 4), res.Tree.Children[1].Range)
}

// Try-and-restore: a sequence that fails partway through must leave
// the enclosing choice free to try its next alternative from the
// original position, not from wherever the failed sequence got to.
func TestSequenceFailure_RestoresPositionForChoice(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Choice(Seq(Char('a'), Char('x')), Literal("ab")))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "ab")
	require.Len(t, res.Tree.Children, 1)
	assert.Equal(t, `"ab"`, res.Tree.Children[0].Label)
	assert.Equal(t, NewRange(0, 2), res.Tree.Children[0].Range)
}

func TestSuppress_PromotesChildrenToParent(t *testing.T) {
	b := NewGrammarBuilder()
	group := Suppress(WithLabel(Seq(Char('a'), Char('b')), "group"))
	b.Define("S", Seq(group, Char('c')))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "abc")
	require.Len(t, res.Tree.Children, 3)
	assert.Equal(t, "'a'", res.Tree.Children[0].Label)
	assert.Equal(t, "'b'", res.Tree.Children[1].Label)
	assert.Equal(t, "'c'", res.Tree.Children[2].Label)
}

func TestSuppressSubnodes_KeepsNodeButDropsChildren(t *testing.T) {
	b := NewGrammarBuilder()
	group := SuppressSubnodes(WithLabel(Seq(Char('a'), Char('b')), "group"))
	b.Define("S", group)
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "ab")
	assert.Equal(t, NewRange(0, 2), res.Tree.Range)
	assert.Empty(t, res.Tree.Children)
}

func TestAction_CanAttachValueToEnclosingNode(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Seq(Char('a'), Action(func(ctx *Context) bool {
		ctx.AttachValue(42)
		return true
	})))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "a")
	assert.Equal(t, 42, res.Tree.Value)
}

func TestAction_PanicBecomesActionError(t *testing.T) {
	boom := errors.New("boom")
	start := Seq(Char('a'), Action(func(ctx *Context) bool {
		panic(boom)
	}))

	_, _, err := Parse(start, "a")
	require.Error(t, err)
	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.ErrorIs(t, actionErr, boom)
}

func TestAction_SkippedInsidePredicateByDefault(t *testing.T) {
	ran := false
	start := Seq(And(Action(func(ctx *Context) bool {
		ran = true
		return true
	})), EmptyMatch())

	_, diag, err := Parse(start, "")
	require.NoError(t, err)
	require.Nil(t, diag)
	assert.False(t, ran, "action inside a predicate should be skipped by default")
}

func TestProxy_UnresolvedPanicsAsConstructionError(t *testing.T) {
	p := Proxy("Missing")
	_, _, err := Parse(p, "x")
	require.Error(t, err)
	var constructionErr *ConstructionError
	require.ErrorAs(t, err, &constructionErr)
}

func TestGrammarBuilder_DetectsZeroWidthOneOrMore(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", OneOrMore(EmptyMatch()))
	b.Start("S")
	_, err := b.Build()
	require.Error(t, err)
}

func TestGrammarBuilder_Recursion(t *testing.T) {
	// Expr <- '(' Expr ')' / 'x'
	b := NewGrammarBuilder()
	expr := b.Rule("Expr")
	b.Define("Expr", Choice(
		Seq(Char('('), expr, Char(')')),
		Char('x'),
	))
	b.Start("Expr")
	start, err := b.Build()
	require.NoError(t, err)

	res := mustParse(t, start, "((x))")
	assert.Equal(t, NewRange(0, 5), res.Tree.Range)
}

func TestDiagnostic_ReportsDeepestFailure(t *testing.T) {
	b := NewGrammarBuilder()
	b.Define("S", Choice(Literal("abc"), Literal("abd")))
	b.Start("S")
	start, err := b.Build()
	require.NoError(t, err)

	_, diag, err := Parse(start, "abx")
	require.NoError(t, err)
	require.NotNil(t, diag)
	assert.Equal(t, 2, diag.Deepest.Index)
}
