package parboiled

// Result is the outcome of a successful parse: the finished tree, a
// snapshot of the value stack at the moment the top-level matcher
// returned, and the input it was parsed against (spec.md §5, §7).
type Result struct {
	Tree   *Node
	Values []any
	Input  *Input
}

// Parse runs start against input from position zero and returns
// either a Result or a Diagnostic describing where and why the match
// failed. Unlike start.Match's boolean return, a parse failure here
// is never a panic or a Go error — only a malformed grammar
// (ConstructionError) or a recovered action panic (ActionError)
// surfaces as err (spec.md §7).
//
// Grounded on the teacher's Parse/api.go entry point, adapted from a
// VM-program driver to one that walks the Matcher graph directly.
func Parse(start Matcher, input string) (*Result, *Diagnostic, error) {
	in := NewInput(input)
	values := newValueStack()
	cfg := NewConfig()
	tracker := newDeepestTracker()
	root := newRootContext(start, in, values, cfg, tracker)

	var constructionErr *ConstructionError
	var actionErr *ActionError
	ok := func() (matched bool) {
		defer func() {
			if r := recover(); r != nil {
				switch e := r.(type) {
				case *ConstructionError:
					constructionErr = e
					matched = false
				case *ActionError:
					actionErr = e
					matched = false
				default:
					panic(r)
				}
			}
		}()
		return start.Match(root)
	}()

	if constructionErr != nil {
		return nil, nil, constructionErr
	}
	if actionErr != nil {
		return nil, nil, actionErr
	}
	if !ok {
		return nil, tracker.diagnostic(), nil
	}

	return &Result{Tree: root.sinkNode(), Values: values.Snapshot(), Input: in}, nil, nil
}

// deepestTracker records the furthest location any matcher reached
// and the labels of the matchers still active there, for building a
// Diagnostic once the whole parse has failed (spec.md §7). It is
// shared by every Context created during one Parse call via the
// owning root's tracker field.
type deepestTracker struct {
	loc      Location
	expected []string
}

func newDeepestTracker() *deepestTracker { return &deepestTracker{} }

func (t *deepestTracker) record(loc Location, label string) {
	switch {
	case loc.Index > t.loc.Index:
		t.loc = loc
		t.expected = []string{label}
	case loc.Index == t.loc.Index:
		for _, e := range t.expected {
			if e == label {
				return
			}
		}
		t.expected = append(t.expected, label)
	}
}

func (t *deepestTracker) diagnostic() *Diagnostic {
	return &Diagnostic{Deepest: t.loc, Expected: t.expected}
}
