package traverse

import (
	"sync"

	"github.com/xab-mack/metaast/internal/node"
)

// NativeResolver finds embeddable child subtrees inside a native node's opaque
// payload. Front ends register one per language they emit native nodes for.
type NativeResolver func(payload any) []*node.Node

var (
	nativeMu        sync.RWMutex
	nativeResolvers = map[string]NativeResolver{}
)

// RegisterNativeChildren installs the resolver for a language tag, replacing
// any previous one. A language with no resolver treats its native nodes as
// childless; that fallback is deliberate, not incidental.
func RegisterNativeChildren(language string, fn NativeResolver) {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	if fn == nil {
		delete(nativeResolvers, language)
		return
	}
	nativeResolvers[language] = fn
}

func nativeChildren(language string, payload any) []*node.Node {
	nativeMu.RLock()
	fn := nativeResolvers[language]
	nativeMu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(payload)
}
