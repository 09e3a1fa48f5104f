// Package runner orchestrates one analysis run: it resolves the analyzer set,
// drives the plugin lifecycle, walks the document once while fanning every
// node out to the ready analyzers, and aggregates the issues into a report.
package runner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
	"github.com/xab-mack/metaast/internal/registry"
	"github.com/xab-mack/metaast/internal/traverse"
	"github.com/xab-mack/metaast/internal/util"
)

// Options controls one run.
type Options struct {
	// Analyzers names an explicit set; empty means every registered analyzer.
	Analyzers []string
	// Config holds per-analyzer-name overrides merged over registry configuration.
	Config map[string]map[string]any
	// HaltOnError stops the traversal once any error-severity issue exists.
	HaltOnError bool
	// MaxIssues caps the issue list; 0 means unlimited.
	MaxIssues int
	// TrackTiming records total and per-analyzer wall time in the report.
	TrackTiming bool
	// Registry defaults to the process-wide one.
	Registry *registry.Registry
}

// RunError is the run-level failure: bad options, a malformed document, or an
// orchestration fault. Plugin faults never become RunErrors; they are isolated
// per node per analyzer.
type RunError struct {
	Stage  string
	Reason string
	Err    error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run failed at %s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("run failed at %s: %s", e.Stage, e.Reason)
}

func (e *RunError) Unwrap() error { return e.Err }

// state is one ready analyzer's slot during the traversal.
type state struct {
	analyzer analyzer.Analyzer
	meta     model.AnalyzerMeta
	ctx      *analyzer.Context
	elapsed  time.Duration
}

// Run analyzes doc with the resolved analyzer set and returns the report.
// The traversal is single-threaded and deterministic: pre-order depth-first,
// analyzers invoked in resolution order at every node.
func Run(doc *model.Document, opts Options) (rep *model.Report, err error) {
	defer func() {
		if p := recover(); p != nil {
			rep, err = nil, &RunError{Stage: "orchestration", Reason: fmt.Sprintf("panic: %v", p)}
		}
	}()

	start := time.Now()
	if doc == nil || doc.Root == nil {
		return nil, &RunError{Stage: "validate", Reason: "document has no root node"}
	}
	if cerr := node.Check(doc.Root); cerr != nil {
		return nil, &RunError{Stage: "validate", Reason: "document root does not conform", Err: cerr}
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	resolved, err := resolve(reg, opts.Analyzers)
	if err != nil {
		return nil, err
	}

	ready, skipped := setup(doc, reg, resolved, opts.Config)

	issues := walk(doc.Root, ready, opts)

	issues = teardown(ready, issues)
	for i := range issues {
		if issues[i].Fingerprint == "" {
			issues[i].Fingerprint = fingerprint(issues[i])
		}
	}

	report := &model.Report{
		RunID:    uuid.NewString(),
		Document: doc,
		Issues:   issues,
		Skipped:  skipped,
		Summary:  model.Summarize(issues),
	}
	report.AnalyzersRun = make([]string, len(ready))
	for i, st := range ready {
		report.AnalyzersRun[i] = st.meta.Name
	}
	if opts.TrackTiming {
		timing := &model.Timing{Total: time.Since(start), PerAnalyzer: map[string]time.Duration{}}
		for _, st := range ready {
			timing.PerAnalyzer[st.meta.Name] = st.elapsed
		}
		report.Timing = timing
	}
	return report, nil
}

// MustRun is the panicking variant of Run.
func MustRun(doc *model.Document, opts Options) *model.Report {
	rep, err := Run(doc, opts)
	if err != nil {
		panic(err)
	}
	return rep
}

// resolve turns the options into a concrete ordered analyzer list.
func resolve(reg *registry.Registry, names []string) ([]analyzer.Analyzer, error) {
	if len(names) == 0 {
		return reg.ListAll(), nil
	}
	out := make([]analyzer.Analyzer, 0, len(names))
	for _, name := range names {
		a, ok := reg.GetByName(name)
		if !ok {
			return nil, &RunError{Stage: "resolve", Reason: fmt.Sprintf("unknown analyzer %q", name)}
		}
		out = append(out, a)
	}
	return out, nil
}

// setup builds each analyzer's initial context and runs its optional Setup
// hook. A Setup panic demotes the analyzer to skipped rather than failing the
// run, keeping fault isolation uniform across all plugin-supplied code.
func setup(doc *model.Document, reg *registry.Registry, resolved []analyzer.Analyzer, overrides map[string]map[string]any) ([]*state, []model.SkippedAnalyzer) {
	var ready []*state
	var skipped []model.SkippedAnalyzer
	for _, a := range resolved {
		meta := a.Meta()
		cfg := reg.ConfigByName(meta.Name)
		for k, v := range overrides[meta.Name] {
			cfg[k] = v
		}
		ctx := analyzer.NewContext(doc, cfg)
		if s, ok := a.(analyzer.Setup); ok {
			result := safeSetup(s, meta.Name, ctx)
			if result.Skipped {
				skipped = append(skipped, model.SkippedAnalyzer{Name: meta.Name, Reason: result.Reason})
				continue
			}
			if result.Ctx != nil {
				ctx = result.Ctx
			}
		}
		ready = append(ready, &state{analyzer: a, meta: meta, ctx: ctx})
	}
	return ready, skipped
}

func safeSetup(s analyzer.Setup, name string, ctx *analyzer.Context) (result analyzer.SetupResult) {
	defer func() {
		if p := recover(); p != nil {
			slog.Warn("analyzer.setup.panic", "analyzer", name, "panic", p)
			result = analyzer.SkipWith(fmt.Sprintf("setup panicked: %v", p))
		}
	}()
	return s.Setup(ctx)
}

// walk performs the single depth-first pass, fanning each node out to every
// ready analyzer and evaluating the halting predicates between nodes.
func walk(root *node.Node, ready []*state, opts Options) []model.Issue {
	var issues []model.Issue
	halted := false
	sawError := false

	var visit func(n *node.Node, ctxs []*analyzer.Context)
	visit = func(n *node.Node, ctxs []*analyzer.Context) {
		if halted {
			return
		}
		childCtxs := make([]*analyzer.Context, len(ready))
		for i, st := range ready {
			at := ctxs[i].Observe(n)
			found := safeAnalyze(st, n, at)
			for _, is := range found {
				if is.Severity == model.SeverityError {
					sawError = true
				}
			}
			issues = append(issues, found...)
			childCtxs[i] = ctxs[i].Enter(n)
		}
		if opts.MaxIssues > 0 && len(issues) >= opts.MaxIssues {
			issues = issues[:opts.MaxIssues]
			halted = true
			return
		}
		if opts.HaltOnError && sawError {
			halted = true
			return
		}
		for _, c := range traverse.Children(n) {
			visit(c, childCtxs)
			if halted {
				return
			}
		}
	}

	base := make([]*analyzer.Context, len(ready))
	for i, st := range ready {
		base[i] = st.ctx
	}
	visit(root, base)
	return issues
}

// safeAnalyze invokes one analyzer at one node, converting a panic into zero
// issues for that node only. Later nodes and other analyzers are unaffected.
func safeAnalyze(st *state, n *node.Node, ctx *analyzer.Context) (found []model.Issue) {
	began := time.Now()
	defer func() {
		st.elapsed += time.Since(began)
		if p := recover(); p != nil {
			slog.Warn("analyzer.panic", "analyzer", st.meta.Name, "node", string(n.Type), "panic", p)
			found = nil
		}
	}()
	found = st.analyzer.Analyze(n, ctx)
	for i := range found {
		if found[i].Analyzer == "" {
			found[i].Analyzer = st.meta.Name
		}
		if found[i].Category == "" {
			found[i].Category = st.meta.Category
		}
		if found[i].Severity == "" {
			found[i].Severity = st.meta.Severity
		}
		if found[i].Fingerprint == "" {
			found[i].Fingerprint = fingerprint(found[i])
		}
	}
	return found
}

func fingerprint(is model.Issue) string {
	nodeType := ""
	line, col := 0, 0
	if is.Node != nil {
		nodeType = string(is.Node.Type)
		line, col = is.Node.Attrs.Line, is.Node.Attrs.Col
	}
	if is.Location != nil {
		line, col = is.Location.Line, is.Location.Col
	}
	return util.Fingerprint(is.Analyzer, nodeType, line, col, is.Message)
}

// teardown chains every ready analyzer's optional Teardown over the
// accumulated issues, in resolution order. A panicking hook leaves the list
// as the previous stage produced it.
func teardown(ready []*state, issues []model.Issue) []model.Issue {
	for _, st := range ready {
		td, ok := st.analyzer.(analyzer.Teardown)
		if !ok {
			continue
		}
		issues = safeTeardown(td, st, issues)
	}
	return issues
}

func safeTeardown(td analyzer.Teardown, st *state, issues []model.Issue) (out []model.Issue) {
	out = issues
	defer func() {
		if p := recover(); p != nil {
			slog.Warn("analyzer.teardown.panic", "analyzer", st.meta.Name, "panic", p)
			out = issues
		}
	}()
	began := time.Now()
	out = td.Teardown(st.ctx, issues)
	st.elapsed += time.Since(began)
	return out
}
