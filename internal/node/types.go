package node

// Type tags every MetaAST node with one member of a closed set. Front ends for
// different source languages all normalize into this taxonomy; the single native
// escape hatch carries whatever cannot be normalized.
type Type string

// Core layer: constructs every supported source language has.
const (
	TypeLiteral       Type = "literal"
	TypeVariable      Type = "variable"
	TypeBinaryOp      Type = "binary_op"
	TypeUnaryOp       Type = "unary_op"
	TypeCall          Type = "call"
	TypeConditional   Type = "conditional"
	TypeBlock         Type = "block"
	TypeReturn        Type = "return"
	TypeAssignment    Type = "assignment"
	TypeBinding       Type = "binding"
)

// Extended layer: common but not universal constructs.
const (
	TypeLoop         Type = "loop"
	TypeLambda       Type = "lambda"
	TypeCollectionOp Type = "collection_op"
	TypeMatch        Type = "match"
	TypeTry          Type = "try"
	TypeAsyncOp      Type = "async_op"
)

// Structural layer: program organization.
const (
	TypeContainer       Type = "container"
	TypeFunctionDef     Type = "function_def"
	TypeAttributeAccess Type = "attribute_access"
	TypeAugAssignment   Type = "aug_assignment"
	TypeProperty        Type = "property"
)

// TypeNative is the escape hatch for constructs a front end cannot normalize.
// Its payload is opaque and tagged with the source language.
const TypeNative Type = "native"

// TypeAbsent marks a legitimately missing optional slot (an else-less
// conditional, a finally-less try). It is a marker, not an error.
const TypeAbsent Type = "absent"

// Category groups types into taxonomy layers.
type Category string

const (
	CategoryCore       Category = "core"
	CategoryExtended   Category = "extended"
	CategoryStructural Category = "structural"
	CategoryNative     Category = "native"
	CategoryUnknown    Category = "unknown"
)

// Literal subtype kinds, stored in Attrs.Kind.
const (
	LiteralInteger = "integer"
	LiteralFloat   = "float"
	LiteralString  = "string"
	LiteralBoolean = "boolean"
	LiteralNone    = "none"
)

// Loop kinds.
const (
	LoopWhile = "while"
	LoopFor   = "for"
)

// Collection operation kinds.
const (
	CollectionMap    = "map"
	CollectionFilter = "filter"
	CollectionReduce = "reduce"
)

// Async operation kinds.
const (
	AsyncAwait = "await"
	AsyncSpawn = "spawn"
)

// Container kinds.
const (
	ContainerModule = "module"
	ContainerClass  = "class"
)

// Attrs is the per-node attribute record. Each tag requires a fixed subset of
// fields (see the shape table); unused fields stay zero. A typed record instead
// of an open map keeps missing or misspelled attributes detectable.
type Attrs struct {
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Operator   string `json:"operator,omitempty" yaml:"operator,omitempty" msgpack:"operator,omitempty"`
	OpCategory string `json:"op_category,omitempty" yaml:"op_category,omitempty" msgpack:"op_category,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Attribute  string `json:"attribute,omitempty" yaml:"attribute,omitempty" msgpack:"attribute,omitempty"`
	Language   string `json:"language,omitempty" yaml:"language,omitempty" msgpack:"language,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Col        int    `json:"col,omitempty" yaml:"col,omitempty" msgpack:"col,omitempty"`
}

// Node is one tagged element of a MetaAST tree: (type tag, attribute record,
// payload). Leaf and native types carry Value; composite and container types
// carry Children. Nodes are immutable once built; transformations produce new
// nodes, never in-place edits.
type Node struct {
	Type     Type    `json:"type" yaml:"type" msgpack:"type"`
	Attrs    Attrs   `json:"attrs,omitempty" yaml:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Value    any     `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

var absentNode = &Node{Type: TypeAbsent}

// Absent returns the shared marker for a missing optional slot.
func Absent() *Node { return absentNode }

// IsAbsent reports whether n is the absent marker.
func IsAbsent(n *Node) bool { return n != nil && n.Type == TypeAbsent }

// CategoryOf classifies a type tag into its taxonomy layer.
// Unrecognized tags classify as CategoryUnknown.
func CategoryOf(t Type) Category {
	switch t {
	case TypeLiteral, TypeVariable, TypeBinaryOp, TypeUnaryOp, TypeCall,
		TypeConditional, TypeBlock, TypeReturn, TypeAssignment, TypeBinding, TypeAbsent:
		return CategoryCore
	case TypeLoop, TypeLambda, TypeCollectionOp, TypeMatch, TypeTry, TypeAsyncOp:
		return CategoryExtended
	case TypeContainer, TypeFunctionDef, TypeAttributeAccess, TypeAugAssignment, TypeProperty:
		return CategoryStructural
	case TypeNative:
		return CategoryNative
	default:
		return CategoryUnknown
	}
}

// Known reports whether t belongs to the closed tag set.
func Known(t Type) bool { return CategoryOf(t) != CategoryUnknown }

// WithChildren returns a copy of n carrying the given children. The original
// node is left untouched. Used by tree rewrites during traversal.
func WithChildren(n *Node, children []*Node) *Node {
	out := &Node{Type: n.Type, Attrs: n.Attrs, Value: n.Value, Children: children}
	return out
}
