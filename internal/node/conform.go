package node

import "fmt"

// NonConformanceError describes the first structural violation found in a tree.
// It is returned as a value so front ends can recover; conformance checking
// never panics.
type NonConformanceError struct {
	Type   Type
	Path   string
	Reason string
}

func (e *NonConformanceError) Error() string {
	return fmt.Sprintf("non-conforming node %s at %s: %s", e.Type, e.Path, e.Reason)
}

// Conforms reports whether the tree rooted at n satisfies every payload
// contract in the shape table.
func Conforms(n *Node) bool { return Check(n) == nil }

// Check walks the tree rooted at n and returns a *NonConformanceError for the
// first violation, or nil. An unknown tag, a payload arity mismatch, a leaf
// value of the wrong type, and a native node without a language tag are all
// violations. A legitimately optional slot holds the Absent marker, never nil.
func Check(n *Node) error { return check(n, "$") }

func check(n *Node, path string) error {
	if n == nil {
		return &NonConformanceError{Path: path, Reason: "nil node"}
	}
	s, ok := shapeOf(n.Type)
	if !ok {
		return &NonConformanceError{Type: n.Type, Path: path, Reason: "unknown type tag"}
	}
	if s.attrs != nil {
		if err := s.attrs(n.Attrs); err != nil {
			return &NonConformanceError{Type: n.Type, Path: path, Reason: err.Error()}
		}
	}
	switch s.kind {
	case leafShape:
		if len(n.Children) != 0 {
			return &NonConformanceError{Type: n.Type, Path: path, Reason: "leaf type carries children"}
		}
		if s.value != nil && !s.value(n.Attrs, n.Value) {
			return &NonConformanceError{Type: n.Type, Path: path, Reason: fmt.Sprintf("payload %T does not match declared subtype", n.Value)}
		}
	case nativeShape:
		// Payload deliberately unconstrained.
	case fixedShape:
		if len(n.Children) != s.arity {
			return &NonConformanceError{
				Type: n.Type, Path: path,
				Reason: fmt.Sprintf("expected %d children, got %d", s.arity, len(n.Children)),
			}
		}
		for i, c := range n.Children {
			if IsAbsent(c) && !slotOptional(s, i) {
				return &NonConformanceError{Type: n.Type, Path: childPath(path, i), Reason: "required slot is absent"}
			}
			if err := check(c, childPath(path, i)); err != nil {
				return err
			}
		}
	case containerShape:
		if len(n.Children) < s.min {
			return &NonConformanceError{
				Type: n.Type, Path: path,
				Reason: fmt.Sprintf("expected at least %d children, got %d", s.min, len(n.Children)),
			}
		}
		for i, c := range n.Children {
			if err := check(c, childPath(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func slotOptional(s shape, i int) bool {
	for _, idx := range s.optional {
		if idx == i {
			return true
		}
	}
	return false
}

func childPath(path string, i int) string { return fmt.Sprintf("%s[%d]", path, i) }
