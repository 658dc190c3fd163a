package parboiled

import "fmt"

// ValueStack is the shared, strictly-ordered stack of user values
// threaded through an entire parse (spec.md §3). It is mutated only
// by grammar actions, via the Context operations below — the engine
// itself never pushes or pops.
type ValueStack struct {
	values []any
}

func newValueStack() *ValueStack { return &ValueStack{} }

func (s *ValueStack) Push(v any) { s.values = append(s.values, v) }

func (s *ValueStack) Pop() (any, bool) {
	if len(s.values) == 0 {
		return nil, false
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

func (s *ValueStack) Top() (any, bool) { return s.PeekN(0) }

// PeekN returns the n-th value from the top (0 is the top itself,
// 1 is "previous", etc.) without popping.
func (s *ValueStack) PeekN(n int) (any, bool) {
	idx := len(s.values) - 1 - n
	if idx < 0 || idx >= len(s.values) {
		return nil, false
	}
	return s.values[idx], true
}

func (s *ValueStack) Len() int { return len(s.values) }

// Snapshot returns a copy of the stack's current contents, bottom to
// top, for inclusion in a Result.
func (s *ValueStack) Snapshot() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// Context is the short-lived, per-invocation frame bracketed by one
// call to a matcher's Match (spec.md §3). A parent composite creates
// one child Context per sub-matcher it attempts; on that child's
// success, createNode folds its accumulated subnodes into a *Node
// (subject to the owner's Flags) and attaches it to the parent.
type Context struct {
	owner   Matcher
	parent  *Context
	input   *Input
	entry   Location
	current Location

	subnodes  []*Node
	value     any
	hasValue  bool
	predicate int // nonzero while a predicate ancestor is active
	values    *ValueStack
	cfg       *Config
	tracker   *deepestTracker
}

// newRootContext seeds the context for the driver's top-level match.
// The context it returns is not itself parentless: it is a child of
// an internal sink context, so that createNode runs its ordinary
// flag-driven logic (spec.md §4.4) for the start matcher exactly as
// it would for any nested rule reference, rather than needing a
// separate root-only code path. The finished tree is the sink's own,
// single accumulated node — see Context.sinkNode.
func newRootContext(owner Matcher, input *Input, values *ValueStack, cfg *Config, tracker *deepestTracker) *Context {
	start := input.StartLocation()
	sink := &Context{
		input:   input,
		entry:   start,
		current: start,
		values:  values,
		cfg:     cfg,
		tracker: tracker,
	}
	return sink.child(owner)
}

// sinkNode returns the single node the root context's match
// accumulated into its sink parent, once Match has returned true.
func (ctx *Context) sinkNode() *Node {
	if ctx.parent == nil || len(ctx.parent.subnodes) == 0 {
		return nil
	}
	return ctx.parent.subnodes[0]
}

// child creates a fresh context for attempting matcher m, inheriting
// this context's current location as the entry point. The new
// context's subnode accumulator starts empty; nothing is attached to
// ctx until the child's own createNode runs (or never does, on
// failure).
func (ctx *Context) child(m Matcher) *Context {
	return &Context{
		owner:     m,
		parent:    ctx,
		input:     ctx.input,
		entry:     ctx.current,
		current:   ctx.current,
		predicate: ctx.predicate,
		values:    ctx.values,
		cfg:       ctx.cfg,
		tracker:   ctx.tracker,
	}
}

// predicateChild is like child, but detached from ctx (parent == nil)
// so that createNode on it, and on anything nested inside it, can
// never attach a node or advance ctx — the mechanism behind predicate
// neutrality (spec.md §8.6): AndMatcher/NotMatcher run their operand
// against a predicateChild and simply never look at what it
// accumulated.
func (ctx *Context) predicateChild(m Matcher) *Context {
	return &Context{
		owner:     m,
		parent:    nil,
		input:     ctx.input,
		entry:     ctx.current,
		current:   ctx.current,
		predicate: ctx.predicate + 1,
		values:    ctx.values,
		cfg:       ctx.cfg,
		tracker:   ctx.tracker,
	}
}

// recordFailure reports to the parse's shared deepestTracker (if any)
// that ctx's owner failed to match at ctx.current — the raw material
// for the Diagnostic a failed Parse returns (spec.md §7).
func (ctx *Context) recordFailure() { ctx.recordFailureAt(ctx.current) }

// recordFailureAt is like recordFailure but for matchers (stringMatcher)
// whose mismatch point can be past ctx.current, since they don't
// advance incrementally while comparing.
func (ctx *Context) recordFailureAt(loc Location) {
	if ctx.tracker != nil {
		ctx.tracker.record(loc, ctx.owner.Label())
	}
}

func (ctx *Context) InPredicate() bool { return ctx.predicate > 0 }

// skipActionsInPredicates resolves the Open Question in spec.md §9:
// when nested matchers disagree on SkipActionsInPredicates, the
// innermost explicit true wins. "Explicit" is approximated by
// walking outward from ctx only as far as the predicate boundary
// (the detached context predicateChild created, whose parent is
// nil) — the first owner along that walk with the flag set decides;
// if none does, the engine-wide default applies.
func (ctx *Context) skipActionsInPredicates() bool {
	for c := ctx; c != nil; c = c.parent {
		if c.owner != nil && c.owner.Flags().SkipActionsInPredicates {
			return true
		}
		if c.parent == nil {
			break
		}
	}
	return ctx.cfg.GetBool("engine.skip_actions_in_predicates_default")
}

// pathOf renders the chain of owner labels from the root down to ctx,
// for attaching to an ActionError.
func pathOf(ctx *Context) string {
	var labels []string
	for c := ctx; c != nil; c = c.parent {
		if c.owner != nil {
			labels = append(labels, c.owner.Label())
		}
	}
	path := ""
	for i := len(labels) - 1; i >= 0; i-- {
		path += "/" + labels[i]
	}
	if path == "" {
		return "/"
	}
	return path
}

// runAction invokes fn, recovering any panic into an error so the
// caller can wrap it as an ActionError rather than letting it
// propagate as a raw panic (spec.md §7).
func runAction(fn ActionFunc, ctx *Context) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, isErr := r.(error); isErr {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	ok = fn(ctx)
	return ok, nil
}

func (ctx *Context) CurrentLocation() Location { return ctx.current }
func (ctx *Context) EntryLocation() Location   { return ctx.entry }
func (ctx *Context) Parent() *Context          { return ctx.parent }
func (ctx *Context) Input() *Input             { return ctx.input }
func (ctx *Context) Owner() Matcher            { return ctx.owner }

// SubNodes returns a read-only view of this context's accumulator so
// far, for actions that want to inspect siblings matched earlier in
// the same composite (spec.md §6).
func (ctx *Context) SubNodes() []*Node { return ctx.subnodes }

// Range is the span this context has covered so far: [entry, current).
func (ctx *Context) Range() Range { return NewRange(ctx.entry.Index, ctx.current.Index) }

// advance moves ctx.current forward by n characters.
func (ctx *Context) advance(n int) {
	ctx.current = ctx.input.Advance(ctx.current, n)
}

// append adds a completed child node to this context's accumulator —
// called by createNode when a nested context succeeds against this
// one as its parent.
func (ctx *Context) append(n *Node) { ctx.subnodes = append(ctx.subnodes, n) }

// appendAll promotes a nested context's own accumulator directly into
// this one's, used for SuppressNode/SkipNode.
func (ctx *Context) appendAll(ns []*Node) { ctx.subnodes = append(ctx.subnodes, ns...) }

// AttachValue stores v as this context's node's value slot, to be
// read back later via Node.Value once createNode runs. Called by
// grammar actions through ActionMatcher.
func (ctx *Context) AttachValue(v any) {
	ctx.value = v
	ctx.hasValue = true
}

// Values returns the parse's shared value stack.
func (ctx *Context) Values() *ValueStack { return ctx.values }

// createNode folds this context's work into the parent's
// accumulator, per the owner matcher's Flags (spec.md §4.4). It must
// only be called once, by the matcher that owns ctx, and only on
// success. It is a no-op on a detached predicate context
// (ctx.parent == nil, see predicateChild), so nothing matched inside
// a predicate reaches the tree.
func (ctx *Context) createNode() {
	if ctx.parent == nil {
		return
	}
	flags := ctx.owner.Flags()

	switch {
	case flags.SuppressNode || flags.SkipNode:
		ctx.parent.appendAll(ctx.subnodes)
	case flags.SuppressSubnodes:
		ctx.parent.append(&Node{
			Label: ctx.owner.Label(),
			Range: ctx.Range(),
			Value: ctx.valueOrNil(),
		})
	default:
		ctx.parent.append(&Node{
			Label:    ctx.owner.Label(),
			Range:    ctx.Range(),
			Children: ctx.subnodes,
			Value:    ctx.valueOrNil(),
		})
	}
	ctx.parent.current = ctx.current
}

func (ctx *Context) valueOrNil() any {
	if ctx.hasValue {
		return ctx.value
	}
	return nil
}

// NodeByPath resolves a '/'-separated sequence of label prefixes
// against this context's current accumulator (spec.md §4.5).
func (ctx *Context) NodeByPath(path string) *Node {
	return nodeByPath(ctx.subnodes, path)
}

// CollectByPath follows the first match of each segment but the last,
// then returns every node matching the final segment at that level,
// left-to-right.
func (ctx *Context) CollectByPath(path string) []*Node {
	return collectByPath(ctx.subnodes, path)
}

// NodeByLabel performs a full pre-order traversal of this context's
// accumulator and returns every node whose label starts with prefix.
func (ctx *Context) NodeByLabel(prefix string) []*Node {
	return collectByLabel(ctx.subnodes, prefix)
}

// NodeText returns the substring of the input covered by n.
func (ctx *Context) NodeText(n *Node) string { return n.Text(ctx.input) }

// NodeChar returns the character at the start of n's range.
func (ctx *Context) NodeChar(n *Node) rune { return n.Char(ctx.input) }
