package node

import "fmt"

type payloadKind int

const (
	leafShape payloadKind = iota
	fixedShape
	containerShape
	nativeShape
)

// shape is one tag's payload contract: how many children, which slots may be
// absent, what a leaf payload must look like, which attributes must be set.
type shape struct {
	kind     payloadKind
	arity    int          // fixedShape: exact child count
	optional []int        // fixedShape: slot indexes where Absent is legal
	min      int          // containerShape: minimum child count
	value    func(Attrs, any) bool
	attrs    func(Attrs) error
}

func opAttrs(a Attrs) error {
	if a.Operator == "" {
		return fmt.Errorf("missing operator attribute")
	}
	return nil
}

func kindAttr(allowed ...string) func(Attrs) error {
	return func(a Attrs) error {
		for _, k := range allowed {
			if a.Kind == k {
				return nil
			}
		}
		return fmt.Errorf("kind %q not one of %v", a.Kind, allowed)
	}
}

func namedAttr(a Attrs) error {
	if a.Name == "" {
		return fmt.Errorf("missing name attribute")
	}
	return nil
}

// literalValue checks a leaf payload against its declared subtype.
func literalValue(kind string, v any) bool {
	switch kind {
	case LiteralInteger:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
		return false
	case LiteralFloat:
		switch v.(type) {
		case float32, float64:
			return true
		}
		return false
	case LiteralString:
		_, ok := v.(string)
		return ok
	case LiteralBoolean:
		_, ok := v.(bool)
		return ok
	case LiteralNone:
		return v == nil
	default:
		return false
	}
}

var shapes = map[Type]shape{
	TypeAbsent:   {kind: leafShape, value: func(_ Attrs, v any) bool { return v == nil }},
	TypeVariable: {kind: leafShape, value: func(_ Attrs, v any) bool { s, ok := v.(string); return ok && s != "" }},
	TypeLiteral: {
		kind:  leafShape,
		value: func(a Attrs, v any) bool { return literalValue(a.Kind, v) },
		attrs: kindAttr(LiteralInteger, LiteralFloat, LiteralString, LiteralBoolean, LiteralNone),
	},

	TypeBinaryOp: {kind: fixedShape, arity: 2, attrs: func(a Attrs) error {
		if err := opAttrs(a); err != nil {
			return err
		}
		if a.OpCategory == "" {
			return fmt.Errorf("missing op_category attribute")
		}
		return nil
	}},
	TypeUnaryOp:     {kind: fixedShape, arity: 1, attrs: opAttrs},
	TypeConditional: {kind: fixedShape, arity: 3, optional: []int{2}},
	TypeReturn:      {kind: fixedShape, arity: 1, optional: []int{0}},
	TypeAssignment:  {kind: fixedShape, arity: 2},
	TypeBinding:     {kind: fixedShape, arity: 2},
	TypeLoop:        {kind: fixedShape, arity: 3, optional: []int{0}, attrs: kindAttr(LoopWhile, LoopFor)},
	TypeLambda:      {kind: fixedShape, arity: 2},
	TypeTry:         {kind: fixedShape, arity: 4, optional: []int{2, 3}},
	TypeAsyncOp:     {kind: fixedShape, arity: 1, attrs: kindAttr(AsyncAwait, AsyncSpawn)},
	TypeFunctionDef: {kind: fixedShape, arity: 2, attrs: namedAttr},
	TypeAttributeAccess: {kind: fixedShape, arity: 1, attrs: func(a Attrs) error {
		if a.Attribute == "" {
			return fmt.Errorf("missing attribute name")
		}
		return nil
	}},
	TypeAugAssignment: {kind: fixedShape, arity: 2, attrs: opAttrs},
	TypeProperty:      {kind: fixedShape, arity: 2, optional: []int{1}, attrs: namedAttr},

	TypeCall:         {kind: containerShape, min: 1},
	TypeBlock:        {kind: containerShape},
	TypeCollectionOp: {kind: containerShape, min: 2, attrs: kindAttr(CollectionMap, CollectionFilter, CollectionReduce)},
	TypeMatch:        {kind: containerShape, min: 2},
	TypeContainer:    {kind: containerShape, attrs: kindAttr(ContainerModule, ContainerClass)},

	TypeNative: {kind: nativeShape, attrs: func(a Attrs) error {
		if a.Language == "" {
			return fmt.Errorf("missing language tag")
		}
		return nil
	}},
}

// shapeOf returns the payload contract for a tag, false for unknown tags.
func shapeOf(t Type) (shape, bool) {
	s, ok := shapes[t]
	return s, ok
}

// IsLeaf reports whether t carries an opaque value payload instead of children.
// Native counts as a leaf here: its children, if any, come from a language
// resolver, not from the payload contract.
func IsLeaf(t Type) bool {
	s, ok := shapeOf(t)
	return ok && (s.kind == leafShape || s.kind == nativeShape)
}
