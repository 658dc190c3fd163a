package parboiled

import "fmt"

// GrammarBuilder is the external collaborator for assembling a set of
// mutually (and possibly recursively) referencing named rules before
// any parsing happens. It owns the arena of proxyMatchers a grammar's
// rule bodies reference by name, and resolves every one of them in a
// single Build call once the grammar is fully defined.
//
// This is deliberately the only supported way to wire up recursive
// rules in this package: a bytecode compiler that turns annotated Go
// methods into a matcher graph, the way the teacher's own grammar
// compiler does, is out of scope (spec.md §1) — grammars here are
// built directly out of the combinators in matcher_terminal.go and
// matcher_composite.go, with GrammarBuilder only handling forward and
// recursive references between them.
type GrammarBuilder struct {
	start   string
	rules   map[string]Matcher
	proxies map[string]*proxyMatcher
	order   []string
}

// NewGrammarBuilder returns an empty builder.
func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{
		rules:   make(map[string]Matcher),
		proxies: make(map[string]*proxyMatcher),
	}
}

// Rule returns a proxy matcher for name, creating it on first
// reference. Use the returned proxy anywhere the rule is referenced
// from another rule's body, including from its own body for
// recursion.
func (b *GrammarBuilder) Rule(name string) Matcher {
	if p, ok := b.proxies[name]; ok {
		return p
	}
	p := Proxy(name)
	b.proxies[name] = p
	return p
}

// Define binds name to body. body may itself reference b.Rule(name)
// (direct recursion) or b.Rule of any other rule (forward reference,
// mutual recursion).
func (b *GrammarBuilder) Define(name string, body Matcher) {
	if _, exists := b.rules[name]; !exists {
		b.order = append(b.order, name)
	}
	b.rules[name] = body
}

// Start marks name as the grammar's entry rule.
func (b *GrammarBuilder) Start(name string) { b.start = name }

// Build resolves every proxy created via Rule against its Define'd
// body and returns the start rule's matcher, ready to pass to Parse.
// It fails with a ConstructionError if the start rule was never set,
// if any referenced rule was never defined, or if a rule contains a
// ZeroOrMore/OneOrMore whose operand's starter set includes the
// empty-match sentinel — a zero-width repetition that ZeroOrMore/
// OneOrMore would otherwise only stop at parse time via the
// no-progress break.
func (b *GrammarBuilder) Build() (Matcher, error) {
	if b.start == "" {
		return nil, &ConstructionError{Matcher: "<grammar>", Reason: "no start rule set"}
	}
	for name, p := range b.proxies {
		body, ok := b.rules[name]
		if !ok {
			return nil, &ConstructionError{Matcher: name, Reason: "referenced but never defined"}
		}
		p.Resolve(body)
	}
	start, ok := b.proxies[b.start]
	if !ok {
		// The start rule was Defined but never referenced by name
		// through Rule, so it has no proxy yet — give it one now.
		start = b.Rule(b.start).(*proxyMatcher)
		body, ok := b.rules[b.start]
		if !ok {
			return nil, &ConstructionError{Matcher: b.start, Reason: "start rule never defined"}
		}
		start.Resolve(body)
	}
	if err := detectZeroWidthCycles(b); err != nil {
		return nil, err
	}
	return start, nil
}

// detectZeroWidthCycles walks each defined rule's body, descending
// through its children (and through resolved rule references), looking
// for a OneOrMore/ZeroOrMore whose operand's starter set includes the
// empty-match sentinel — a grammar bug the engine's own no-progress
// break in repetitionBody already guards against at runtime, but which
// is cheaper to reject at build time with a clear message.
func detectZeroWidthCycles(b *GrammarBuilder) error {
	for _, name := range b.order {
		body := b.rules[name]
		if err := checkRepetitionOperands(body, name, make(map[Matcher]bool)); err != nil {
			return err
		}
	}
	return nil
}

func checkRepetitionOperands(m Matcher, rule string, seen map[Matcher]bool) error {
	if seen[m] {
		return nil
	}
	seen[m] = true

	switch t := m.(type) {
	case *oneOrMoreMatcher:
		if t.children[0].StarterSet().HasEmpty() {
			return &ConstructionError{
				Matcher: rule,
				Reason:  fmt.Sprintf("%s's operand can match without consuming input, which would loop forever", t.Label()),
			}
		}
	case *zeroOrMoreMatcher:
		if t.children[0].StarterSet().HasEmpty() {
			return &ConstructionError{
				Matcher: rule,
				Reason:  fmt.Sprintf("%s's operand can match without consuming input, which would loop forever", t.Label()),
			}
		}
	}
	for _, c := range m.Children() {
		if err := checkRepetitionOperands(c, rule, seen); err != nil {
			return err
		}
	}
	return nil
}
