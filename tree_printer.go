package parboiled

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// FormatFunc decides how (or whether) a rendered token is colorized.
type FormatFunc func(input string, token formatToken) string

// treePrinter is the teacher's indent/pad tree-printing technique
// (tree_printer.go), kept in shape: a writer that tracks a stack of
// indent strings and exposes write/writel/pwrite helpers to line-draw
// a tree. Unlike the teacher's own printer it is not generic: it is
// fixed to formatToken, the one concrete token type this package's
// visit actually emits, which is what lets visit call format with a
// formatToken literal without a type mismatch.
type treePrinter struct {
	padStr []string
	output strings.Builder
	format FormatFunc
}

func newTreePrinter(format FormatFunc) *treePrinter {
	return &treePrinter{format: format}
}

func (tp *treePrinter) indent(s string) {
	tp.padStr = append(tp.padStr, s)
}

func (tp *treePrinter) unindent() {
	tp.padStr = tp.padStr[:len(tp.padStr)-1]
}

func (tp *treePrinter) padding() {
	for _, item := range tp.padStr {
		tp.write(item)
	}
}

func (tp *treePrinter) write(s string) {
	tp.output.WriteString(s)
}

func (tp *treePrinter) writel(s string) {
	tp.write(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter) pwrite(s string) {
	tp.padding()
	tp.write(s)
}

func (tp *treePrinter) pwritel(s string) {
	tp.pwrite(s)
	tp.output.WriteRune('\n')
}

var literalSanitizer = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
	string('\n'), `\n`,
	string('\r'), `\r`,
	string('\t'), `\t`,
)

func escapeLiteral(s string) string {
	return literalSanitizer.Replace(s)
}

// formatToken identifies which part of a rendered node a color theme
// applies to.
type formatToken int

const (
	tokenNone formatToken = iota
	tokenRange
	tokenLiteral
	tokenLabel
)

// Theme maps formatTokens to github.com/fatih/color styles, replacing
// the teacher's hand-rolled ANSI escape table (ascii/colors.go) with
// the ecosystem library while keeping the same semantic shape: one
// color per syntax role.
type Theme struct {
	Range, Literal, Label *color.Color
}

// DefaultTheme is the color scheme used by Node.Highlight.
var DefaultTheme = Theme{
	Range:   color.New(color.FgYellow),
	Literal: color.New(color.FgHiBlack),
	Label:   color.New(color.FgCyan, color.Bold),
}

func (t Theme) apply(s string, tok formatToken) string {
	switch tok {
	case tokenRange:
		return t.Range.Sprint(s)
	case tokenLiteral:
		return t.Literal.Sprint(s)
	case tokenLabel:
		return t.Label.Sprint(s)
	default:
		return s
	}
}

// Pretty renders the subtree rooted at n as an indented tree, without
// color, suitable for piping or diffing in tests.
func (n *Node) Pretty(in *Input) string {
	return n.render(in, func(s string, _ formatToken) string { return s })
}

// Highlight renders the subtree rooted at n the same way as Pretty
// but with DefaultTheme's ANSI colors applied, for terminal output
// (used by cmd/pegrun).
func (n *Node) Highlight(in *Input) string {
	return n.render(in, DefaultTheme.apply)
}

func (n *Node) render(in *Input, format FormatFunc) string {
	p := newTreePrinter(format)
	p.visit(n, in)
	return p.output.String()
}

func (p *treePrinter) visit(n *Node, in *Input) {
	if n == nil {
		p.write("<nil>")
		return
	}

	label := p.format(n.Label, tokenLabel)
	rangeStr := p.format(fmt.Sprintf(" (%s)", n.Range), tokenRange)

	if n.Leaf() {
		text := p.format(escapeLiteral(in.Slice(n.Range.Start, n.Range.End)), tokenLiteral)
		p.write(label)
		p.write(" ")
		p.write(text)
		p.write(rangeStr)
		return
	}

	p.writel(label + rangeStr)
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		if last {
			p.pwrite("└── ")
			p.indent("    ")
		} else {
			p.pwrite("├── ")
			p.indent("│   ")
		}
		p.visit(child, in)
		p.unindent()
		if !last {
			p.write("\n")
		}
	}
}
