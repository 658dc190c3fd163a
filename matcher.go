package parboiled

// Flags are the four policy bits a grammar attaches to a matcher at
// construction time (spec.md §3, §4.4). They govern node-creation
// policy and predicate behavior and are immutable properties of the
// matcher graph — a Context only ever reads them, never sets them
// (spec.md §9, "Suppression flags belong on the matcher").
type Flags struct {
	// SuppressNode: the matcher succeeds but contributes no node of
	// its own; its accumulated children are attached directly to
	// the parent context instead.
	SuppressNode bool
	// SuppressSubnodes: the matcher contributes a node, but that
	// node has no children.
	SuppressSubnodes bool
	// SkipNode: like SuppressNode — no node is created and children
	// are promoted to the parent. The two flags have the same runtime
	// effect in createNode.
	SkipNode bool
	// SkipActionsInPredicates: an ActionMatcher beneath this matcher,
	// while inside a predicate, short-circuits to success instead of
	// invoking the user's action function.
	SkipActionsInPredicates bool
}

// Matcher is a node in the grammar's combinator graph. Every matcher
// — terminal or composite — implements this interface; the set of
// concrete variants is closed by this package (spec.md §9,
// "tagged union dispatched by a single match operation").
type Matcher interface {
	// Label returns the matcher's human-readable name: either an
	// explicit override set via WithLabel, or a structural default
	// supplied by the concrete matcher.
	Label() string
	// Flags returns this matcher's policy bits.
	Flags() Flags
	// Children returns the matcher's sub-matchers, nil for
	// terminals.
	Children() []Matcher
	// StarterSet returns the set of characters on which this
	// matcher can possibly succeed, including the empty-match
	// sentinel if the matcher can succeed without consuming input.
	StarterSet() Characters
	// Match attempts this matcher against ctx. On success it
	// advances ctx.current and, subject to its Flags, creates
	// exactly one node in ctx.parent's accumulator via
	// ctx.createNode; action and predicate matchers create none. On
	// failure ctx.parent is left exactly as it was on entry, and ctx
	// itself is discarded by the caller (spec.md §4.1, the
	// try-and-restore invariant).
	Match(ctx *Context) bool
}

// matcherBase implements the label/flags bookkeeping shared by every
// concrete matcher, grounded on parboiled's AbstractMatcher
// (original_source has only CharMatcher.java, but its
// super.getLabel() call documents the same pattern: an optional
// override falling back to a structural default).
type matcherBase struct {
	label    string
	flags    Flags
	children []Matcher
}

func (b *matcherBase) Flags() Flags { return b.flags }
func (b *matcherBase) Children() []Matcher { return b.children }

// withLabel sets the matcher's own label override in place. The
// exported WithLabel decorator below does not use it; it wraps the
// matcher instead.
func (b *matcherBase) withLabel(label string) { b.label = label }

// labeledMatcher decorates an inner matcher with policy overrides
// without altering its matching logic — Match is forwarded to the
// inner matcher unchanged, operating on the very same *Context, whose
// owner is this wrapper. Because node creation reads flags/label from
// ctx's owner (see context.go's createNode), wrapping is enough to
// change node-creation policy without touching the inner matcher's
// code, mirroring spec.md §9's rule that flags are compile-time,
// matcher-level properties.
type labeledMatcher struct {
	inner Matcher
	label string
	flags Flags
	has   struct{ label, flags bool }
}

func (m *labeledMatcher) Label() string {
	if m.has.label {
		return m.label
	}
	return m.inner.Label()
}

func (m *labeledMatcher) Flags() Flags {
	if m.has.flags {
		return m.flags
	}
	return m.inner.Flags()
}

func (m *labeledMatcher) Children() []Matcher { return m.inner.Children() }
func (m *labeledMatcher) StarterSet() Characters { return m.inner.StarterSet() }
func (m *labeledMatcher) Match(ctx *Context) bool { return m.inner.Match(ctx) }

func decorate(m Matcher) *labeledMatcher {
	if lm, ok := m.(*labeledMatcher); ok {
		clone := *lm
		return &clone
	}
	return &labeledMatcher{inner: m}
}

// WithLabel overrides a matcher's label, used by grammar authors (or
// the external grammar builder) to give an anonymous combinator a
// human-readable name in parse trees and diagnostics.
func WithLabel(m Matcher, label string) Matcher {
	d := decorate(m)
	d.label = label
	d.has.label = true
	return d
}

// Suppress marks m so it contributes no node of its own; its
// children are attached to the parent instead (spec.md §4.4).
func Suppress(m Matcher) Matcher { return withFlag(m, func(f *Flags) { f.SuppressNode = true }) }

// SuppressSubnodes marks m so it contributes a node but discards its
// children.
func SuppressSubnodes(m Matcher) Matcher {
	return withFlag(m, func(f *Flags) { f.SuppressSubnodes = true })
}

// Skip marks m so it contributes no node and promotes its children,
// the same runtime effect as Suppress (see Flags.SkipNode).
func Skip(m Matcher) Matcher { return withFlag(m, func(f *Flags) { f.SkipNode = true }) }

// SkipActionsInPredicates marks m so that ActionMatchers beneath it,
// while evaluated inside a predicate, short-circuit to success
// instead of running the user's action.
func SkipActionsInPredicates(m Matcher) Matcher {
	return withFlag(m, func(f *Flags) { f.SkipActionsInPredicates = true })
}

func withFlag(m Matcher, set func(*Flags)) Matcher {
	d := decorate(m)
	flags := d.inner.Flags()
	if d.has.flags {
		flags = d.flags
	}
	set(&flags)
	d.flags = flags
	d.has.flags = true
	return d
}
