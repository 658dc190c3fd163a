package parboiled

import "testing"

func TestValueStack_PushPopPeekN(t *testing.T) {
	vs := newValueStack()
	vs.Push(1)
	vs.Push(2)
	vs.Push(3)

	if top, ok := vs.Top(); !ok || top != 3 {
		t.Fatalf("Top() = %v, %v; want 3, true", top, ok)
	}
	if prev, ok := vs.PeekN(1); !ok || prev != 2 {
		t.Fatalf("PeekN(1) = %v, %v; want 2, true", prev, ok)
	}
	if v, ok := vs.Pop(); !ok || v != 3 {
		t.Fatalf("Pop() = %v, %v; want 3, true", v, ok)
	}
	if vs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", vs.Len())
	}
}

func TestValueStack_PopEmptyReportsFalse(t *testing.T) {
	vs := newValueStack()
	if _, ok := vs.Pop(); ok {
		t.Fatal("Pop() on an empty stack should report false")
	}
	if _, ok := vs.Top(); ok {
		t.Fatal("Top() on an empty stack should report false")
	}
}

func TestValueStack_SnapshotIsACopy(t *testing.T) {
	vs := newValueStack()
	vs.Push("a")
	snap := vs.Snapshot()
	vs.Push("b")
	if len(snap) != 1 {
		t.Fatalf("Snapshot taken before the second push should have length 1, got %d", len(snap))
	}
}

// Invariant 6 (spec.md §8): predicates never change the current
// location or the parent's subnode accumulator, whether they succeed
// or fail.
func TestPredicate_NeverMutatesParentOnSuccessOrFailure(t *testing.T) {
	cases := []struct {
		name string
		pred Matcher
	}{
		{"And succeeding", And(Char('a'))},
		{"And failing", And(Char('x'))},
		{"Not succeeding", Not(Char('x'))},
		{"Not failing", Not(Char('a'))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInput("a")
			start := in.StartLocation()
			sink := &Context{
				input:   in,
				entry:   start,
				current: start,
				values:  newValueStack(),
				cfg:     NewConfig(),
				tracker: newDeepestTracker(),
			}
			ctx := sink.child(tc.pred)

			before := sink.current
			beforeLen := len(sink.subnodes)

			tc.pred.Match(ctx)

			if sink.current != before {
				t.Errorf("predicate moved the parent's cursor from %v to %v", before, sink.current)
			}
			if len(sink.subnodes) != beforeLen {
				t.Errorf("predicate changed the parent's subnode count from %d to %d", beforeLen, len(sink.subnodes))
			}
		})
	}
}

func TestContext_PathOfRendersOwnerChain(t *testing.T) {
	var captured string
	start := WithLabel(Seq(WithLabel(Action(func(ctx *Context) bool {
		captured = pathOf(ctx)
		return true
	}), "inner")), "outer")

	if _, _, err := Parse(start, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured == "" {
		t.Fatal("pathOf produced an empty path")
	}
}
