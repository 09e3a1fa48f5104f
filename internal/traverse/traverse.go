// Package traverse implements the generic depth-first walk over MetaAST trees:
// pre-order visit, left-to-right children, post-order visit, with node
// replacement and accumulator threading. Child extraction is driven by the
// node shape table; native nodes delegate to per-language resolvers.
package traverse

import "github.com/xab-mack/metaast/internal/node"

// VisitFunc observes one value during a walk and may replace it and update the
// accumulator. Values that are not nodes pass through exactly once and are not
// descended into.
type VisitFunc func(v any, acc any) (any, any)

// Walk performs a fold-and-rewrite traversal rooted at v.
//
// pre runs before descent; replacing the node in pre takes effect before
// children are extracted, so a rewrite can redirect which subtree is walked.
// Children are walked left to right, the node is reassembled from the
// (possibly transformed) children, then post runs. The input tree is never
// mutated: a changed child list yields a fresh node.
//
// A child rewritten to a non-node value cannot be reattached to an immutable
// parent and is kept as the original child; the accumulator still observes it.
func Walk(v any, acc any, pre, post VisitFunc) (any, any) {
	if pre != nil {
		v, acc = pre(v, acc)
	}
	if n, ok := v.(*node.Node); ok && n != nil {
		kids := Children(n)
		if len(kids) > 0 {
			rebuilt := make([]*node.Node, len(kids))
			changed := false
			for i, c := range kids {
				var cv any
				cv, acc = Walk(c, acc, pre, post)
				if nc, ok := cv.(*node.Node); ok {
					rebuilt[i] = nc
					if nc != c {
						changed = true
					}
				} else {
					rebuilt[i] = c
				}
			}
			if changed {
				v = node.WithChildren(n, rebuilt)
			}
		}
	}
	if post != nil {
		v, acc = post(v, acc)
	}
	return v, acc
}

// Children extracts the walkable children of n per its tag's payload contract.
// Leaf tags yield none; composite and container tags yield their payload list;
// native delegates to the language's registered resolver, defaulting to none
// when the language has no resolver.
func Children(n *node.Node) []*node.Node {
	if n == nil {
		return nil
	}
	if n.Type == node.TypeNative {
		return nativeChildren(n.Attrs.Language, n.Value)
	}
	if node.IsLeaf(n.Type) {
		return nil
	}
	return n.Children
}
