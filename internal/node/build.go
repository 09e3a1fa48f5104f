package node

// Constructors for every tag. Trees built through these conform by
// construction as long as the supplied payloads do.

func Literal(kind string, value any) *Node {
	return &Node{Type: TypeLiteral, Attrs: Attrs{Kind: kind}, Value: value}
}

func Integer(v int64) *Node { return Literal(LiteralInteger, v) }
func Float(v float64) *Node { return Literal(LiteralFloat, v) }
func String(v string) *Node { return Literal(LiteralString, v) }
func Boolean(v bool) *Node  { return Literal(LiteralBoolean, v) }
func None() *Node           { return Literal(LiteralNone, nil) }

func Variable(name string) *Node {
	return &Node{Type: TypeVariable, Value: name}
}

func BinaryOp(category, operator string, left, right *Node) *Node {
	return &Node{
		Type:     TypeBinaryOp,
		Attrs:    Attrs{Operator: operator, OpCategory: category},
		Children: []*Node{left, right},
	}
}

func UnaryOp(operator string, operand *Node) *Node {
	return &Node{Type: TypeUnaryOp, Attrs: Attrs{Operator: operator}, Children: []*Node{operand}}
}

// Call builds a call node: the callee first, arguments after.
func Call(callee *Node, args ...*Node) *Node {
	return &Node{Type: TypeCall, Children: append([]*Node{callee}, args...)}
}

// Conditional's elseBranch may be Absent().
func Conditional(cond, then, elseBranch *Node) *Node {
	return &Node{Type: TypeConditional, Children: []*Node{cond, then, elseBranch}}
}

func Block(stmts ...*Node) *Node {
	return &Node{Type: TypeBlock, Children: stmts}
}

// Return's value may be Absent() for a bare return.
func Return(value *Node) *Node {
	return &Node{Type: TypeReturn, Children: []*Node{value}}
}

func Assignment(target, value *Node) *Node {
	return &Node{Type: TypeAssignment, Children: []*Node{target, value}}
}

func Binding(pattern, value *Node) *Node {
	return &Node{Type: TypeBinding, Children: []*Node{pattern, value}}
}

// Loop: binding is Absent() for while loops; for loops bind the iteration
// variable and iterate the second child.
func Loop(kind string, binding, cond, body *Node) *Node {
	return &Node{Type: TypeLoop, Attrs: Attrs{Kind: kind}, Children: []*Node{binding, cond, body}}
}

func While(cond, body *Node) *Node { return Loop(LoopWhile, Absent(), cond, body) }

func For(binding, iterable, body *Node) *Node { return Loop(LoopFor, binding, iterable, body) }

func Lambda(params, body *Node) *Node {
	return &Node{Type: TypeLambda, Children: []*Node{params, body}}
}

func CollectionOp(kind string, collection *Node, rest ...*Node) *Node {
	return &Node{Type: TypeCollectionOp, Attrs: Attrs{Kind: kind}, Children: append([]*Node{collection}, rest...)}
}

// Match: the subject first, clauses after.
func Match(subject *Node, clauses ...*Node) *Node {
	return &Node{Type: TypeMatch, Children: append([]*Node{subject}, clauses...)}
}

// Try: elseBlock and finallyBlock may be Absent().
func Try(body, handlers, elseBlock, finallyBlock *Node) *Node {
	return &Node{Type: TypeTry, Children: []*Node{body, handlers, elseBlock, finallyBlock}}
}

func AsyncOp(kind string, operand *Node) *Node {
	return &Node{Type: TypeAsyncOp, Attrs: Attrs{Kind: kind}, Children: []*Node{operand}}
}

func Container(kind, name string, body ...*Node) *Node {
	return &Node{Type: TypeContainer, Attrs: Attrs{Kind: kind, Name: name}, Children: body}
}

func FunctionDef(name string, params, body *Node) *Node {
	return &Node{Type: TypeFunctionDef, Attrs: Attrs{Name: name}, Children: []*Node{params, body}}
}

func AttributeAccess(object *Node, attribute string) *Node {
	return &Node{Type: TypeAttributeAccess, Attrs: Attrs{Attribute: attribute}, Children: []*Node{object}}
}

func AugAssignment(operator string, target, value *Node) *Node {
	return &Node{Type: TypeAugAssignment, Attrs: Attrs{Operator: operator}, Children: []*Node{target, value}}
}

// Property: setter may be Absent() for read-only properties.
func Property(name string, getter, setter *Node) *Node {
	return &Node{Type: TypeProperty, Attrs: Attrs{Name: name}, Children: []*Node{getter, setter}}
}

// Native wraps a construct the front end could not normalize. The payload is
// opaque; traversal asks the language's registered resolver for embedded
// children.
func Native(language string, payload any) *Node {
	return &Node{Type: TypeNative, Attrs: Attrs{Language: language}, Value: payload}
}

// At returns a copy of n annotated with a source location.
func At(n *Node, line, col int) *Node {
	out := *n
	out.Attrs.Line = line
	out.Attrs.Col = col
	return &out
}
