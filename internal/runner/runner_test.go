package runner

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
	"github.com/xab-mack/metaast/internal/registry"
)

func doc(root *node.Node) *model.Document {
	return model.NewDocument(root, "python", map[string]any{"adapter": "test"}, "")
}

func newReg(t *testing.T, analyzers ...analyzer.Analyzer) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, a := range analyzers {
		if err := r.Register(a); err != nil {
			t.Fatalf("register %T: %v", a, err)
		}
	}
	return r
}

// litFlagger flags every literal node.
type litFlagger struct{ name string }

func (a *litFlagger) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: a.name, Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "flags literals"}
}

func (a *litFlagger) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type != node.TypeLiteral {
		return nil
	}
	return []model.Issue{{Message: fmt.Sprintf("literal %v", n.Value), Node: n}}
}

// silent never reports.
type silent struct{ name string }

func (a *silent) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: a.name, Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "never reports"}
}

func (a *silent) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue { return nil }

// panicsOnLiteral blows up at every literal node.
type panicsOnLiteral struct{}

func (a *panicsOnLiteral) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "panicker", Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "panics on literals"}
}

func (a *panicsOnLiteral) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type == node.TypeLiteral {
		panic("kaboom")
	}
	return nil
}

// skipper opts out during setup.
type skipper struct{}

func (a *skipper) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "skipper", Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "always skips"}
}

func (a *skipper) Setup(ctx *analyzer.Context) analyzer.SetupResult {
	return analyzer.SkipWith("not applicable to this document")
}

func (a *skipper) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	panic("analyze must never run on a skipped analyzer")
}

func (a *skipper) Teardown(ctx *analyzer.Context, issues []model.Issue) []model.Issue {
	panic("teardown must never run on a skipped analyzer")
}

// setupPanics exercises uniform hook-fault isolation.
type setupPanics struct{}

func (a *setupPanics) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "setup-panics", Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "panics in setup"}
}

func (a *setupPanics) Setup(ctx *analyzer.Context) analyzer.SetupResult { panic("setup boom") }

func (a *setupPanics) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	panic("unreachable")
}

// appender tags the issue list during teardown so chaining is observable.
type appender struct{ name string }

func (a *appender) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: a.name, Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "appends a teardown marker"}
}

func (a *appender) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue { return nil }

func (a *appender) Teardown(ctx *analyzer.Context, issues []model.Issue) []model.Issue {
	return append(issues, model.Issue{
		Analyzer: a.name,
		Category: model.CategoryStyle,
		Severity: model.SeverityInfo,
		Message:  fmt.Sprintf("saw %d issues", len(issues)),
	})
}

// teardownPanics returns garbage by panicking; the runner must keep the list.
type teardownPanics struct{}

func (a *teardownPanics) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "teardown-panics", Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "panics in teardown"}
}

func (a *teardownPanics) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue { return nil }

func (a *teardownPanics) Teardown(ctx *analyzer.Context, issues []model.Issue) []model.Issue {
	panic("teardown boom")
}

// errOnVariable emits an error-severity issue at every variable node.
type errOnVariable struct{}

func (a *errOnVariable) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "err-on-var", Category: model.CategorySecurity, Severity: model.SeverityError, Description: "errors on variables"}
}

func (a *errOnVariable) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type != node.TypeVariable {
		return nil
	}
	return []model.Issue{{Message: "tainted variable", Node: n}}
}

func threeLiterals() *node.Node {
	return node.Block(node.Integer(1), node.Integer(2), node.Integer(3))
}

func TestRunNoAnalyzers(t *testing.T) {
	root := node.BinaryOp("arithmetic", "+", node.Variable("x"), node.Integer(5))
	rep, err := Run(doc(root), Options{Registry: registry.New()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(rep.Issues))
	}
	if len(rep.AnalyzersRun) != 0 {
		t.Fatalf("expected no analyzers run, got %v", rep.AnalyzersRun)
	}
	if rep.RunID == "" {
		t.Fatalf("report must carry a run id")
	}
}

func TestRunTwoAnalyzersAttribution(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"}, &silent{name: "B"})
	rep, err := Run(doc(threeLiterals()), Options{Registry: reg})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rep.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(rep.Issues))
	}
	for _, is := range rep.Issues {
		if is.Analyzer != "A" {
			t.Fatalf("issue attributed to %q, want A", is.Analyzer)
		}
		if is.Severity != model.SeverityInfo || is.Category != model.CategoryStyle {
			t.Fatalf("runner must backfill severity/category from metadata: %+v", is)
		}
	}
	if rep.Summary.ByAnalyzer["A"] != 3 || rep.Summary.ByAnalyzer["B"] != 0 {
		t.Fatalf("summary by analyzer = %v", rep.Summary.ByAnalyzer)
	}
	if !reflect.DeepEqual(rep.AnalyzersRun, []string{"A", "B"}) {
		t.Fatalf("analyzers run = %v", rep.AnalyzersRun)
	}
}

func TestExplicitAnalyzerList(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"}, &litFlagger{name: "B"})
	rep, err := Run(doc(threeLiterals()), Options{Registry: reg, Analyzers: []string{"B"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !reflect.DeepEqual(rep.AnalyzersRun, []string{"B"}) {
		t.Fatalf("analyzers run = %v", rep.AnalyzersRun)
	}
	if rep.Summary.ByAnalyzer["B"] != 3 || rep.Summary.ByAnalyzer["A"] != 0 {
		t.Fatalf("summary = %v", rep.Summary.ByAnalyzer)
	}
}

func TestUnknownAnalyzerNameIsRunError(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"})
	_, err := Run(doc(threeLiterals()), Options{Registry: reg, Analyzers: []string{"nope"}})
	var re *RunError
	if !errors.As(err, &re) || re.Stage != "resolve" {
		t.Fatalf("expected resolve-stage RunError, got %v", err)
	}
}

func TestMalformedDocumentIsRunError(t *testing.T) {
	reg := registry.New()
	if _, err := Run(nil, Options{Registry: reg}); err == nil {
		t.Fatalf("nil document must fail")
	}
	bad := &node.Node{Type: node.Type("mystery")}
	_, err := Run(doc(bad), Options{Registry: reg})
	var re *RunError
	if !errors.As(err, &re) || re.Stage != "validate" {
		t.Fatalf("expected validate-stage RunError, got %v", err)
	}
	var nce *node.NonConformanceError
	if !errors.As(err, &nce) {
		t.Fatalf("RunError must wrap the conformance violation, got %v", err)
	}
}

func TestFaultIsolationPerNodePerAnalyzer(t *testing.T) {
	reg := newReg(t, &panicsOnLiteral{}, &litFlagger{name: "A"})
	rep, err := Run(doc(threeLiterals()), Options{Registry: reg})
	if err != nil {
		t.Fatalf("a panicking analyzer must not abort the run: %v", err)
	}
	if rep.Summary.ByAnalyzer["panicker"] != 0 {
		t.Fatalf("panicker must contribute zero issues")
	}
	if rep.Summary.ByAnalyzer["A"] != 3 {
		t.Fatalf("other analyzers must be unaffected, got %v", rep.Summary.ByAnalyzer)
	}
	if !reflect.DeepEqual(rep.AnalyzersRun, []string{"panicker", "A"}) {
		t.Fatalf("a faulting analyzer still counts as run: %v", rep.AnalyzersRun)
	}
}

func TestMaxIssuesCap(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"})
	root := node.Block(node.Integer(1), node.Integer(2), node.Integer(3), node.Integer(4), node.Integer(5))
	rep, err := Run(doc(root), Options{Registry: reg, MaxIssues: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rep.Issues) != 2 {
		t.Fatalf("issue list must never exceed the cap, got %d", len(rep.Issues))
	}
}

func TestHaltOnError(t *testing.T) {
	reg := newReg(t, &errOnVariable{}, &litFlagger{name: "A"})
	// The variable precedes the literals, so halting suppresses every literal issue.
	root := node.Block(node.Variable("x"), node.Integer(1), node.Integer(2))
	rep, err := Run(doc(root), Options{Registry: reg, HaltOnError: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Summary.ByAnalyzer["A"] != 0 {
		t.Fatalf("nodes after the first error must contribute nothing, got %v", rep.Summary.ByAnalyzer)
	}
	if rep.Summary.BySeverity[model.SeverityError] != 1 {
		t.Fatalf("the error issue itself is kept, summary %v", rep.Summary.BySeverity)
	}

	// Without halting, the literal issues appear.
	rep, err = Run(doc(root), Options{Registry: reg})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Summary.ByAnalyzer["A"] != 2 {
		t.Fatalf("expected literal issues without halting, got %v", rep.Summary.ByAnalyzer)
	}
}

func TestSkippedAnalyzerExcluded(t *testing.T) {
	reg := newReg(t, &skipper{}, &litFlagger{name: "A"})
	rep, err := Run(doc(threeLiterals()), Options{Registry: reg})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !reflect.DeepEqual(rep.AnalyzersRun, []string{"A"}) {
		t.Fatalf("skipped analyzer must not appear in analyzers run: %v", rep.AnalyzersRun)
	}
	if len(rep.Skipped) != 1 || rep.Skipped[0].Name != "skipper" || rep.Skipped[0].Reason == "" {
		t.Fatalf("skip reason must be recorded: %+v", rep.Skipped)
	}
}

func TestSetupPanicDemotesToSkip(t *testing.T) {
	reg := newReg(t, &setupPanics{}, &litFlagger{name: "A"})
	rep, err := Run(doc(threeLiterals()), Options{Registry: reg})
	if err != nil {
		t.Fatalf("a setup fault must not fail the run: %v", err)
	}
	if !reflect.DeepEqual(rep.AnalyzersRun, []string{"A"}) {
		t.Fatalf("faulted analyzer must be excluded: %v", rep.AnalyzersRun)
	}
	if len(rep.Skipped) != 1 || rep.Skipped[0].Name != "setup-panics" {
		t.Fatalf("setup fault must surface as a recorded skip: %+v", rep.Skipped)
	}
}

func TestTeardownChains(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"}, &appender{name: "t1"}, &appender{name: "t2"})
	rep, err := Run(doc(node.Block(node.Integer(1))), Options{Registry: reg})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rep.Issues) != 3 {
		t.Fatalf("expected 1 analyze issue + 2 teardown markers, got %d", len(rep.Issues))
	}
	first, second := rep.Issues[1], rep.Issues[2]
	if first.Analyzer != "t1" || first.Message != "saw 1 issues" {
		t.Fatalf("t1 must see the pre-teardown list: %+v", first)
	}
	if second.Analyzer != "t2" || second.Message != "saw 2 issues" {
		t.Fatalf("t2 must see t1's output: %+v", second)
	}
}

func TestTeardownPanicKeepsList(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"}, &teardownPanics{})
	rep, err := Run(doc(node.Block(node.Integer(1))), Options{Registry: reg})
	if err != nil {
		t.Fatalf("a teardown fault must not fail the run: %v", err)
	}
	if len(rep.Issues) != 1 {
		t.Fatalf("issue list must survive a teardown panic, got %d", len(rep.Issues))
	}
}

func TestDeterminism(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"}, &errOnVariable{})
	root := node.Block(
		node.Assignment(node.Variable("x"), node.Integer(1)),
		node.Conditional(node.Variable("x"), node.Block(node.Integer(2)), node.Absent()),
	)
	first, err := Run(doc(root), Options{Registry: reg})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Run(doc(root), Options{Registry: reg})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if !reflect.DeepEqual(first.Issues, again.Issues) {
			t.Fatalf("issue lists differ between identical runs")
		}
		if !reflect.DeepEqual(first.Summary, again.Summary) {
			t.Fatalf("summaries differ between identical runs")
		}
	}
}

func TestTimingTracked(t *testing.T) {
	reg := newReg(t, &litFlagger{name: "A"})
	rep, err := Run(doc(threeLiterals()), Options{Registry: reg, TrackTiming: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Timing == nil || rep.Timing.Total <= 0 {
		t.Fatalf("timing must be recorded when requested: %+v", rep.Timing)
	}
	if _, ok := rep.Timing.PerAnalyzer["A"]; !ok {
		t.Fatalf("per-analyzer timing missing: %+v", rep.Timing.PerAnalyzer)
	}

	rep, err = Run(doc(threeLiterals()), Options{Registry: reg})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Timing != nil {
		t.Fatalf("timing must be absent unless requested")
	}
}

func TestMustRunPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustRun must panic on a run-level error")
		}
	}()
	MustRun(nil, Options{Registry: registry.New()})
}

// bookkeeper records what the context looked like at one particular node.
type bookkeeper struct {
	depth     int
	ancestors []node.Type
	container string
	function  string
}

func (a *bookkeeper) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "bookkeeper", Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "records context bookkeeping"}
}

func (a *bookkeeper) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type == node.TypeLiteral {
		a.depth = ctx.Depth
		a.ancestors = nil
		for _, anc := range ctx.Ancestors {
			a.ancestors = append(a.ancestors, anc.Type)
		}
		a.container = ctx.EnclosingContainer
		a.function = ctx.EnclosingFunction
	}
	return nil
}

func TestContextBookkeeping(t *testing.T) {
	bk := &bookkeeper{}
	reg := newReg(t, bk)
	root := node.Container(node.ContainerClass, "Account",
		node.FunctionDef("balance",
			node.Block(),
			node.Block(node.Return(node.Integer(0))),
		),
	)
	if _, err := Run(doc(root), Options{Registry: reg}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if bk.depth != 4 {
		t.Fatalf("literal depth = %d, want 4", bk.depth)
	}
	want := []node.Type{node.TypeContainer, node.TypeFunctionDef, node.TypeBlock, node.TypeReturn}
	if !reflect.DeepEqual(bk.ancestors, want) {
		t.Fatalf("ancestors = %v, want %v", bk.ancestors, want)
	}
	if bk.container != "Account" || bk.function != "balance" {
		t.Fatalf("enclosing names = %q/%q", bk.container, bk.function)
	}
}

func TestConfigOverridesMergeOverRegistry(t *testing.T) {
	reg := registry.New()
	probe := &configProbe{}
	if err := reg.Register(probe); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Configure(probe, map[string]any{"limit": 1, "mode": "strict"}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	opts := Options{Registry: reg, Config: map[string]map[string]any{"config-probe": {"limit": 9}}}
	if _, err := Run(doc(node.Integer(1)), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	if probe.limit != 9 || probe.mode != "strict" {
		t.Fatalf("merged config limit=%d mode=%q", probe.limit, probe.mode)
	}
}

type configProbe struct {
	limit int
	mode  string
}

func (a *configProbe) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{Name: "config-probe", Category: model.CategoryStyle, Severity: model.SeverityInfo, Description: "records resolved config", Configurable: true}
}

func (a *configProbe) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	a.limit = ctx.IntOption("limit", -1)
	a.mode = ctx.StringOption("mode", "")
	return nil
}
