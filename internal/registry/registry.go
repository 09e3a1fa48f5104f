// Package registry is the process-wide directory of available analyzers:
// registration with conflict resolution, category indexing, and per-analyzer
// configuration. All access is serialized; callers need no external locking.
package registry

import (
	"fmt"
	"sync"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
)

// RegistrationError reports why a module was rejected. Returned as a value;
// the registry never panics on bad input.
type RegistrationError struct {
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("registration rejected: %s", e.Reason)
	}
	return fmt.Sprintf("registration of %q rejected: %s", e.Name, e.Reason)
}

type entry struct {
	analyzer analyzer.Analyzer
	meta     model.AnalyzerMeta
}

// Registry holds registered analyzers in three indices: unique by name,
// deduplicated by category, and a flat ordered set. Registration order is
// preserved and defines the default resolution order for runs.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]*entry
	byCategory map[model.Category][]*entry
	all        []*entry
	configs    map[string]map[string]any
}

func New() *Registry {
	return &Registry{
		byName:     map[string]*entry{},
		byCategory: map[model.Category][]*entry{},
		configs:    map[string]map[string]any{},
	}
}

var defaultRegistry = New()

// Default returns the shared process-wide registry.
func Default() *Registry { return defaultRegistry }

// Register validates v and inserts it into all indices. Rejections: v does
// not satisfy the analyzer contract, its metadata is incomplete, its Meta
// panics, or another module already claimed the name (first registration
// wins).
func (r *Registry) Register(v any) error {
	a, ok := v.(analyzer.Analyzer)
	if !ok {
		return &RegistrationError{Reason: "module does not implement the analyzer contract (Meta/Analyze)"}
	}
	meta, err := safeMeta(a)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[meta.Name]; exists {
		return &RegistrationError{Name: meta.Name, Reason: "name already registered"}
	}
	e := &entry{analyzer: a, meta: meta}
	r.byName[meta.Name] = e
	r.byCategory[meta.Category] = append(r.byCategory[meta.Category], e)
	r.all = append(r.all, e)
	return nil
}

func safeMeta(a analyzer.Analyzer) (meta model.AnalyzerMeta, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &RegistrationError{Reason: fmt.Sprintf("Meta panicked: %v", p)}
		}
	}()
	meta = a.Meta()
	switch {
	case meta.Name == "":
		err = &RegistrationError{Reason: "metadata missing name"}
	case meta.Category == "":
		err = &RegistrationError{Name: meta.Name, Reason: "metadata missing category"}
	case meta.Severity == "":
		err = &RegistrationError{Name: meta.Name, Reason: "metadata missing severity"}
	case meta.Description == "":
		err = &RegistrationError{Name: meta.Name, Reason: "metadata missing description"}
	}
	return meta, err
}

// Unregister removes v from all indices and drops its stored configuration.
// Idempotent; unknown or malformed modules are ignored.
func (r *Registry) Unregister(v any) {
	a, ok := v.(analyzer.Analyzer)
	if !ok {
		return
	}
	meta, err := safeMeta(a)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, exists := r.byName[meta.Name]
	if !exists {
		return
	}
	delete(r.byName, meta.Name)
	delete(r.configs, meta.Name)
	r.byCategory[meta.Category] = removeEntry(r.byCategory[meta.Category], e)
	if len(r.byCategory[meta.Category]) == 0 {
		delete(r.byCategory, meta.Category)
	}
	r.all = removeEntry(r.all, e)
}

func removeEntry(list []*entry, e *entry) []*entry {
	out := list[:0]
	for _, x := range list {
		if x != e {
			out = append(out, x)
		}
	}
	return out
}

// ListAll returns every registered analyzer in registration order.
func (r *Registry) ListAll() []analyzer.Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]analyzer.Analyzer, len(r.all))
	for i, e := range r.all {
		out[i] = e.analyzer
	}
	return out
}

// ListByCategory returns the analyzers registered under a category,
// in registration order.
func (r *Registry) ListByCategory(cat model.Category) []analyzer.Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.byCategory[cat]
	out := make([]analyzer.Analyzer, len(entries))
	for i, e := range entries {
		out[i] = e.analyzer
	}
	return out
}

// GetByName resolves one analyzer by its unique name.
func (r *Registry) GetByName(name string) (analyzer.Analyzer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.analyzer, true
}

// Configure shallow-merges partial into the module's stored configuration,
// last write wins per key. The module must be registered.
func (r *Registry) Configure(v any, partial map[string]any) error {
	a, ok := v.(analyzer.Analyzer)
	if !ok {
		return &RegistrationError{Reason: "module does not implement the analyzer contract (Meta/Analyze)"}
	}
	meta, err := safeMeta(a)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[meta.Name]; !exists {
		return &RegistrationError{Name: meta.Name, Reason: "not registered"}
	}
	cfg := r.configs[meta.Name]
	if cfg == nil {
		cfg = map[string]any{}
		r.configs[meta.Name] = cfg
	}
	for k, val := range partial {
		cfg[k] = val
	}
	return nil
}

// Config returns a copy of the module's merged configuration; an empty map
// when none was ever set.
func (r *Registry) Config(v any) map[string]any {
	a, ok := v.(analyzer.Analyzer)
	if !ok {
		return map[string]any{}
	}
	meta, err := safeMeta(a)
	if err != nil {
		return map[string]any{}
	}
	return r.ConfigByName(meta.Name)
}

// ConfigByName is Config keyed by analyzer name.
func (r *Registry) ConfigByName(name string) map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[string]any{}
	for k, val := range r.configs[name] {
		out[k] = val
	}
	return out
}

// Clear empties every index and all stored configuration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = map[string]*entry{}
	r.byCategory = map[model.Category][]*entry{}
	r.all = nil
	r.configs = map[string]map[string]any{}
}
