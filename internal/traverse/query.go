package traverse

import "github.com/xab-mack/metaast/internal/node"

// Count returns the number of nodes in the tree rooted at n, root included.
func Count(n *node.Node) int {
	_, acc := Walk(n, 0, func(v, acc any) (any, any) {
		if _, ok := v.(*node.Node); ok {
			return v, acc.(int) + 1
		}
		return v, acc
	}, nil)
	return acc.(int)
}

// MaxDepth returns the depth of the deepest node; a lone leaf has depth 1.
func MaxDepth(n *node.Node) int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range Children(n) {
		if d := MaxDepth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// CollectVariables returns the distinct variable names referenced in the tree,
// in first-seen pre-order.
func CollectVariables(n *node.Node) []string {
	type state struct {
		seen  map[string]bool
		names []string
	}
	_, acc := Walk(n, &state{seen: map[string]bool{}}, func(v, acc any) (any, any) {
		st := acc.(*state)
		if nd, ok := v.(*node.Node); ok && nd.Type == node.TypeVariable {
			if name, ok := nd.Value.(string); ok && !st.seen[name] {
				st.seen[name] = true
				st.names = append(st.names, name)
			}
		}
		return v, st
	}, nil)
	return acc.(*state).names
}
