// Package arith assembles a small arithmetic grammar out of this
// module's matcher combinators. It exists to give cmd/pegrun a real
// grammar to run and to exercise the value stack end to end: each
// Number leaf pushes its parsed value, and each operator action pops
// two operands and pushes the result, so a successful Parse's
// Result.Values holds exactly one entry, the expression's value.
//
// Grounded on the shape of the teacher's examples/tiny grammar
// (go/examples/tiny), rewritten against this package's
// GrammarBuilder instead of langlang's generated parser.
package arith

import (
	"strconv"

	"github.com/theanuradha/parboiled"
)

// Build assembles and resolves the grammar:
//
//	Program <- Expr EndOfInput
//	Expr    <- Term (('+' / '-') Term)*
//	Term    <- Factor (('*' / '/') Factor)*
//	Factor  <- Number / '(' Expr ')'
//	Number  <- [0-9]+
//
// Program, not Expr, is the start rule: requiring EndOfInput there
// (and nowhere inside the recursive Expr/Factor rules, where it would
// wrongly reject a parenthesized sub-expression) is what makes a
// trailing "+$" or other leftover input an actual parse failure
// instead of a successful partial match — ZeroOrMore inside Expr/Term
// always succeeds, so without this, "1+" would parse as just "1".
func Build() (parboiled.Matcher, error) {
	b := parboiled.NewGrammarBuilder()

	digits := parboiled.OfRange('0', '9')

	number := parboiled.WithLabel(
		parboiled.Seq(
			parboiled.OneOrMore(parboiled.Class(digits)),
			parboiled.Action(pushNumber),
		),
		"Number",
	)

	expr := b.Rule("Expr")
	term := b.Rule("Term")

	factor := parboiled.WithLabel(
		parboiled.Choice(
			number,
			parboiled.Seq(parboiled.Char('('), expr, parboiled.Char(')')),
		),
		"Factor",
	)

	b.Define("Term", parboiled.WithLabel(
		parboiled.Seq(
			factor,
			parboiled.ZeroOrMore(parboiled.WithLabel(
				parboiled.Seq(
					parboiled.WithLabel(parboiled.Choice(parboiled.Char('*'), parboiled.Char('/')), "MulOp"),
					factor,
					parboiled.Action(applyPendingOp),
				),
				"MulTerm",
			)),
		),
		"Term",
	))

	b.Define("Expr", parboiled.WithLabel(
		parboiled.Seq(
			term,
			parboiled.ZeroOrMore(parboiled.WithLabel(
				parboiled.Seq(
					parboiled.WithLabel(parboiled.Choice(parboiled.Char('+'), parboiled.Char('-')), "AddOp"),
					term,
					parboiled.Action(applyPendingOp),
				),
				"AddTerm",
			)),
		),
		"Expr",
	))

	b.Define("Program", parboiled.WithLabel(
		parboiled.Seq(expr, parboiled.Suppress(parboiled.EndOfInput())),
		"Program",
	))
	b.Start("Program")
	return b.Build()
}

// pushNumber runs as the last step of the Number rule's own
// sequence, so ctx here is that sequence's context: its
// EntryLocation/CurrentLocation span exactly the digits just
// consumed.
func pushNumber(ctx *parboiled.Context) bool {
	text := ctx.Input().Slice(ctx.EntryLocation().Index, ctx.CurrentLocation().Index)
	n, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	ctx.Values().Push(n)
	return true
}

// applyPendingOp runs as the last step of a MulTerm/AddTerm sequence:
// SubNodes() holds, in order, the operator choice's own node (labeled
// "MulOp" or "AddOp", whose range covers the single operator
// character) followed by the right-hand factor/term's node. The
// left-hand operand was pushed by an earlier iteration, or by the
// enclosing Term/Expr's first factor/term.
func applyPendingOp(ctx *parboiled.Context) bool {
	nodes := ctx.SubNodes()
	opNode := nodes[len(nodes)-2]
	op := ctx.NodeText(opNode)

	rhs, _ := ctx.Values().Pop()
	lhs, _ := ctx.Values().Pop()
	ctx.Values().Push(evalOp(op, lhs.(int), rhs.(int)))
	return true
}

func evalOp(op string, lhs, rhs int) int {
	switch op {
	case "+":
		return lhs + rhs
	case "-":
		return lhs - rhs
	case "*":
		return lhs * rhs
	case "/":
		return lhs / rhs
	default:
		return 0
	}
}
