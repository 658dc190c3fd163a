package parboiled

// Composite matchers combine other matchers. All of them follow the
// same try-and-restore discipline as the terminals in
// matcher_terminal.go: a sub-match is always attempted against a
// freshly created child context, and only a successful sub-match ever
// touches the parent (via that child's own createNode call). A failed
// attempt simply discards its throwaway context, which is why none of
// the Match methods below need an explicit rollback step.
//
// Grounded on the teacher's generic combinator functions in parser.go
// (ZeroOrMore, OneOrMore, Choice, Optional, And, Not), adapted from
// Go generics over a custom ParserFn[T] to this package's Matcher
// interface and node-creation contract.

// sequenceMatcher requires every child to succeed in order, at
// increasing positions, restoring to the sequence's own entry point
// if any child fails (spec.md §4.3).
type sequenceMatcher struct{ matcherBase }

// Seq returns a matcher that requires ms to match in order.
func Seq(ms ...Matcher) Matcher { return &sequenceMatcher{matcherBase{children: ms}} }

func (m *sequenceMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "Sequence"
}

func (m *sequenceMatcher) StarterSet() Characters {
	out := EmptyCharacters()
	for _, c := range m.children {
		s := c.StarterSet()
		out = out.Union(s)
		if !s.HasEmpty() {
			break
		}
	}
	return out
}

func (m *sequenceMatcher) Match(ctx *Context) bool {
	for _, c := range m.children {
		child := ctx.child(c)
		if !c.Match(child) {
			return false
		}
	}
	ctx.createNode()
	return true
}

// choiceMatcher tries each child in order and commits to the first
// one that succeeds, never trying the remaining alternatives (spec.md
// §4.3, "ordered choice").
type choiceMatcher struct{ matcherBase }

// Choice returns a matcher for the ordered alternatives ms.
func Choice(ms ...Matcher) Matcher { return &choiceMatcher{matcherBase{children: ms}} }

func (m *choiceMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "Choice"
}

func (m *choiceMatcher) StarterSet() Characters {
	out := EmptyCharacters()
	for _, c := range m.children {
		out = out.Union(c.StarterSet())
	}
	return out
}

func (m *choiceMatcher) Match(ctx *Context) bool {
	for _, c := range m.children {
		child := ctx.child(c)
		if c.Match(child) {
			ctx.createNode()
			return true
		}
	}
	return false
}

// repetitionBody runs child repeatedly against ctx, stopping at the
// first failed attempt or the first attempt that succeeds without
// consuming any input (a no-progress iteration, which would otherwise
// loop forever). It returns the number of successful iterations.
// Shared by zeroOrMoreMatcher and oneOrMoreMatcher.
func repetitionBody(ctx *Context, child Matcher) int {
	limit := ctx.cfg.GetInt("engine.max_repetition_iterations")
	n := 0
	for ; n < limit; n++ {
		iter := ctx.child(child)
		if !child.Match(iter) {
			break
		}
		if iter.current.Index == iter.entry.Index {
			n++
			break
		}
	}
	return n
}

// zeroOrMoreMatcher always succeeds, having matched its operand zero
// or more times (spec.md §4.3).
type zeroOrMoreMatcher struct{ matcherBase }

// ZeroOrMore returns a matcher that matches m zero or more times.
func ZeroOrMore(m Matcher) Matcher { return &zeroOrMoreMatcher{matcherBase{children: []Matcher{m}}} }

func (m *zeroOrMoreMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "ZeroOrMore"
}

func (m *zeroOrMoreMatcher) StarterSet() Characters {
	return m.children[0].StarterSet().Union(OfRune(Empty))
}

func (m *zeroOrMoreMatcher) Match(ctx *Context) bool {
	repetitionBody(ctx, m.children[0])
	ctx.createNode()
	return true
}

// oneOrMoreMatcher requires at least one successful match of its
// operand, then behaves like zeroOrMoreMatcher for the rest.
type oneOrMoreMatcher struct{ matcherBase }

// OneOrMore returns a matcher that matches m one or more times.
func OneOrMore(m Matcher) Matcher { return &oneOrMoreMatcher{matcherBase{children: []Matcher{m}}} }

func (m *oneOrMoreMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "OneOrMore"
}

func (m *oneOrMoreMatcher) StarterSet() Characters { return m.children[0].StarterSet() }

func (m *oneOrMoreMatcher) Match(ctx *Context) bool {
	if repetitionBody(ctx, m.children[0]) == 0 {
		return false
	}
	ctx.createNode()
	return true
}

// optionalMatcher always succeeds: it matches its operand once if it
// can, and contributes no child nodes if it can't (spec.md §4.3).
type optionalMatcher struct{ matcherBase }

// Optional returns a matcher that matches m zero or one times.
func Optional(m Matcher) Matcher { return &optionalMatcher{matcherBase{children: []Matcher{m}}} }

func (m *optionalMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "Optional"
}

func (m *optionalMatcher) StarterSet() Characters {
	return m.children[0].StarterSet().Union(OfRune(Empty))
}

func (m *optionalMatcher) Match(ctx *Context) bool {
	child := ctx.child(m.children[0])
	m.children[0].Match(child)
	ctx.createNode()
	return true
}

// andMatcher is a positive lookahead: it succeeds iff its operand
// would succeed from the current position, but never consumes input
// or contributes a node — predicates are evaluated in a detached
// context so nothing they do is visible outside the predicate itself
// (spec.md §4.3, §8.6).
type andMatcher struct{ matcherBase }

// And returns a positive-lookahead matcher for m.
func And(m Matcher) Matcher { return &andMatcher{matcherBase{children: []Matcher{m}}} }

func (m *andMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "And"
}

func (m *andMatcher) StarterSet() Characters { return m.children[0].StarterSet() }

func (m *andMatcher) Match(ctx *Context) bool {
	probe := ctx.predicateChild(m.children[0])
	return m.children[0].Match(probe)
}

// notMatcher is a negative lookahead: it succeeds iff its operand
// would fail, with the same no-consumption, no-node guarantee as
// andMatcher.
type notMatcher struct{ matcherBase }

// Not returns a negative-lookahead matcher for m.
func Not(m Matcher) Matcher { return &notMatcher{matcherBase{children: []Matcher{m}}} }

func (m *notMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "Not"
}

func (m *notMatcher) StarterSet() Characters { return OfRune(Empty) }

func (m *notMatcher) Match(ctx *Context) bool {
	probe := ctx.predicateChild(m.children[0])
	return !m.children[0].Match(probe)
}

// ActionFunc is a caller-supplied, side-effecting check over the
// context of the rule currently on the stack: it may read the
// accumulated subnodes and value stack, push/pop values, and returns
// whether the parse should continue. A panicking ActionFunc is
// recovered by actionMatcher and reported as an ActionError, never as
// an ordinary parse failure (spec.md §7).
type ActionFunc func(ctx *Context) bool

// actionMatcher runs a user-supplied function as part of a grammar.
// It never consumes input and never contributes a parse-tree node of
// its own (spec.md §4.3, "produces no parse-tree node").
type actionMatcher struct {
	matcherBase
	fn ActionFunc
}

// Action returns a matcher that runs fn against the enclosing
// context. fn's boolean result becomes the matcher's own result.
func Action(fn ActionFunc) Matcher { return &actionMatcher{fn: fn} }

func (m *actionMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return "Action"
}

func (m *actionMatcher) StarterSet() Characters { return OfRune(Empty) }

func (m *actionMatcher) Match(ctx *Context) bool {
	if ctx.InPredicate() && ctx.skipActionsInPredicates() {
		return true
	}
	target := ctx.parent
	if target == nil {
		target = ctx
	}
	ok, err := runAction(m.fn, target)
	if err != nil {
		panic(&ActionError{Path: pathOf(target), Cause: err})
	}
	return ok
}

// proxyMatcher resolves a forward or recursive rule reference by
// name. Unlike every other composite, it forwards Match to its
// target using the very same *Context it was given, rather than
// creating a child — this is what makes a named rule's own node
// carry the rule's label directly over whatever the rule body
// matched, with no extra wrapping level in between (spec.md §4.6,
// test scenario S2). See labeledMatcher in matcher.go for the same
// trick used by the exported flag decorators.
type proxyMatcher struct {
	matcherBase
	name   string
	target Matcher
}

// Proxy returns an unresolved reference to a rule named name. A
// GrammarBuilder (builder.go) resolves target before the grammar is
// used; Match on an unresolved proxy panics with a ConstructionError.
func Proxy(name string) *proxyMatcher { return &proxyMatcher{name: name} }

func (m *proxyMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return m.name
}

func (m *proxyMatcher) Name() string { return m.name }

// Flags delegates to the resolved target so that flags attached to a
// rule's body (e.g. b.Define("S", Suppress(...))) take effect
// wherever the rule is referenced, proxy included — the same
// delegation Children and StarterSet already do below.
func (m *proxyMatcher) Flags() Flags {
	if m.target == nil {
		return m.matcherBase.Flags()
	}
	return m.target.Flags()
}

// Resolve binds the proxy to its target matcher. Called once by
// GrammarBuilder.Build after every rule in a grammar has been
// defined.
func (m *proxyMatcher) Resolve(target Matcher) { m.target = target }

func (m *proxyMatcher) Resolved() bool { return m.target != nil }

func (m *proxyMatcher) Children() []Matcher {
	if m.target == nil {
		return nil
	}
	return []Matcher{m.target}
}

func (m *proxyMatcher) StarterSet() Characters {
	if m.target == nil {
		return EmptyCharacters()
	}
	return m.target.StarterSet()
}

func (m *proxyMatcher) Match(ctx *Context) bool {
	if m.target == nil {
		panic(&ConstructionError{Matcher: m.name, Reason: "unresolved rule proxy"})
	}
	return m.target.Match(ctx)
}
