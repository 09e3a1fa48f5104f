package analyzer

import (
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

// Context is one analyzer's run state: the document under analysis, the
// analyzer's resolved configuration, positional bookkeeping maintained by the
// runner, and a free-form Scope the analyzer may use for its own tracking
// (a symbol table, counters). Each analyzer owns its context exclusively;
// bookkeeping steps yield new values, the shared fields are never mutated.
type Context struct {
	Document           *model.Document
	Config             map[string]any
	Ancestors          []*node.Node // innermost last
	Depth              int
	EnclosingContainer string
	EnclosingFunction  string
	Scope              any
}

// NewContext builds the initial context handed to Setup: empty ancestor
// stack, depth zero, empty scope.
func NewContext(doc *model.Document, config map[string]any) *Context {
	if config == nil {
		config = map[string]any{}
	}
	return &Context{Document: doc, Config: config}
}

// Observe returns a context updated for standing at n: when n introduces a
// container or function scope its name becomes the enclosing one. Depth and
// ancestors are untouched; a node that introduces nothing returns c itself.
func (c *Context) Observe(n *node.Node) *Context {
	switch n.Type {
	case node.TypeContainer:
		out := *c
		out.EnclosingContainer = n.Attrs.Name
		return &out
	case node.TypeFunctionDef:
		out := *c
		out.EnclosingFunction = n.Attrs.Name
		return &out
	default:
		return c
	}
}

// Enter returns a new context positioned inside n: depth incremented, n
// pushed on a fresh ancestor stack, enclosing container/function names
// updated when n introduces one.
func (c *Context) Enter(n *node.Node) *Context {
	base := c.Observe(n)
	out := *base
	out.Ancestors = make([]*node.Node, len(c.Ancestors)+1)
	copy(out.Ancestors, c.Ancestors)
	out.Ancestors[len(c.Ancestors)] = n
	out.Depth = c.Depth + 1
	return &out
}

// WithScope returns a copy carrying the given scope value.
func (c *Context) WithScope(scope any) *Context {
	out := *c
	out.Scope = scope
	return &out
}

// Parent returns the innermost ancestor, nil at the root.
func (c *Context) Parent() *node.Node {
	if len(c.Ancestors) == 0 {
		return nil
	}
	return c.Ancestors[len(c.Ancestors)-1]
}

// IntOption reads an integer configuration key, tolerating the numeric types
// the TOML and JSON decoders produce. Returns def when unset or mistyped.
func (c *Context) IntOption(key string, def int) int {
	switch v := c.Config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// BoolOption reads a boolean configuration key.
func (c *Context) BoolOption(key string, def bool) bool {
	if v, ok := c.Config[key].(bool); ok {
		return v
	}
	return def
}

// StringOption reads a string configuration key.
func (c *Context) StringOption(key, def string) string {
	if v, ok := c.Config[key].(string); ok && v != "" {
		return v
	}
	return def
}
