package parboiled

import "strings"

// Path and label addressing resolve against a context's in-progress
// subnode accumulator, not the finalized tree (spec.md §4.5): a rule
// can inspect what its own sub-expressions have matched so far while
// it is still running. Both schemes share the same depth-first,
// left-to-right traversal order.

// nodeByPath resolves a '/'-separated sequence of label prefixes,
// returning the first matching node at each level. An empty segment
// (a leading '/') is ignored, so "/a/b" and "a/b" are equivalent.
func nodeByPath(nodes []*Node, path string) *Node {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}
	cur := nodes
	var found *Node
	for _, seg := range segments {
		found = firstByPrefix(cur, seg)
		if found == nil {
			return nil
		}
		cur = found.Children
	}
	return found
}

// collectByPath is like nodeByPath, but at the final segment it
// returns every matching node instead of just the first.
func collectByPath(nodes []*Node, path string) []*Node {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}
	cur := nodes
	for _, seg := range segments[:len(segments)-1] {
		found := firstByPrefix(cur, seg)
		if found == nil {
			return nil
		}
		cur = found.Children
	}
	return allByPrefix(cur, segments[len(segments)-1])
}

// collectByLabel performs a full pre-order traversal and returns
// every node whose label starts with prefix, depth-first,
// left-to-right, regardless of depth.
func collectByLabel(nodes []*Node, prefix string) []*Node {
	var out []*Node
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			if strings.HasPrefix(n.Label, prefix) {
				out = append(out, n)
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func firstByPrefix(nodes []*Node, prefix string) *Node {
	for _, n := range nodes {
		if strings.HasPrefix(n.Label, prefix) {
			return n
		}
	}
	return nil
}

func allByPrefix(nodes []*Node, prefix string) []*Node {
	var out []*Node
	for _, n := range nodes {
		if strings.HasPrefix(n.Label, prefix) {
			out = append(out, n)
		}
	}
	return out
}
