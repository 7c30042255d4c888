package planner_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tsdbquery/planner/internal/testfactory"
	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/planner"
	"github.com/tsdbquery/planner/pkg/query"
	"github.com/tsdbquery/planner/pkg/types"
)

func noSpan() trace.Span {
	_, span := noop.NewTracerProvider().Tracer("planner_test").Start(context.Background(), "test")
	return span
}

func newTestPlanner(t *testing.T, registry *factory.Registry) (*planner.Planner, *testfactory.Executor) {
	t.Helper()
	contextSink := testfactory.NewExecutor(types.NewContextNode(), nil)
	p := planner.New(context.Background(), registry, contextSink)
	return p, contextSink
}

func defaultRegistry(pushdownTypes ...string) *factory.Registry {
	r := factory.NewRegistry()
	r.Register("filter", testfactory.NewOperatorFactory(pushdownTypes...))
	r.Register("groupby", testfactory.NewOperatorFactory(pushdownTypes...))
	r.Register("tsdb", testfactory.NewSourceFactory(pushdownTypes...))
	return r
}

func mustPlan(t *testing.T, p *planner.Planner, eg *query.ExecutionGraph) {
	t.Helper()
	result := p.Plan(context.Background(), noSpan(), eg)
	if err := result.Wait(context.Background()); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
}

// TestLinearPushDown is spec scenario 1: ctx -> filter -> group -> source
// with both operators push-down eligible. Expected: executor graph
// collapses to contextSink -> source; rebuilt source's pushDownNodes =
// [group, filter]; serializationSources = {"source"}.
func TestLinearPushDown(t *testing.T) {
	registry := defaultRegistry("filter", "groupby")
	p, _ := newTestPlanner(t, registry)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "filter1", Type: "filter", Sources: []string{"group1"}, PushDown: true},
		{ID: "group1", Type: "groupby", Sources: []string{"source1"}, PushDown: true},
		{ID: "source1", SourceID: "tsdb"},
	}}
	mustPlan(t, p, eg)

	ss := p.SerializationSources()
	if _, ok := ss["source1"]; !ok || len(ss) != 1 {
		t.Fatalf("expected serializationSources = {source1}, got %v", ss)
	}

	src, ok := p.ConfigGraph().NodeByID("source1")
	if !ok {
		t.Fatalf("source1 missing from config graph")
	}
	ds, ok := types.IsDataSource(src)
	if !ok {
		t.Fatalf("source1 is not a DataSourceConfig")
	}
	pushed := ds.PushDownNodes()
	if len(pushed) != 2 || pushed[0].ID() != "group1" || pushed[1].ID() != "filter1" {
		t.Fatalf("expected pushDownNodes = [group1, filter1], got %+v", idsOf(pushed))
	}

	if p.ConfigGraph().HasNode("filter1") || p.ConfigGraph().HasNode("group1") {
		t.Fatalf("filter1/group1 should have been folded out of the config graph")
	}
}

// TestPartialPushDown is spec scenario 2: same graph but group.pushDown =
// false, so nothing folds (group itself blocks the chain from group
// downward, since group's own pushDown flag is false even though its type
// is pushdown-capable).
func TestPartialPushDown(t *testing.T) {
	registry := defaultRegistry("filter", "groupby")
	p, _ := newTestPlanner(t, registry)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "filter1", Type: "filter", Sources: []string{"group1"}, PushDown: true},
		{ID: "group1", Type: "groupby", Sources: []string{"source1"}, PushDown: false},
		{ID: "source1", SourceID: "tsdb"},
	}}
	mustPlan(t, p, eg)

	src, ok := p.ConfigGraph().NodeByID("source1")
	if !ok {
		t.Fatalf("source1 missing")
	}
	ds, _ := types.IsDataSource(src)
	if len(ds.PushDownNodes()) != 0 {
		t.Fatalf("expected no pushdown, got %+v", idsOf(ds.PushDownNodes()))
	}

	ss := p.SerializationSources()
	if _, ok := ss["filter1:source1"]; !ok || len(ss) != 1 {
		t.Fatalf("expected serializationSources = {filter1:source1}, got %v", ss)
	}
}

// TestFilterSelection is spec scenario 3: two independent branches, a sink
// filter naming only one of them.
func TestFilterSelection(t *testing.T) {
	registry := defaultRegistry()
	p, _ := newTestPlanner(t, registry)

	eg := &query.ExecutionGraph{
		Nodes: []query.Node{
			{ID: "a", Type: "filter", Sources: []string{"source1"}},
			{ID: "source1", SourceID: "tsdb"},
			{ID: "b", Type: "filter", Sources: []string{"source2"}},
			{ID: "source2", SourceID: "tsdb"},
		},
		SinkFilters: []string{"a"},
	}
	mustPlan(t, p, eg)

	aCfg, _ := p.ConfigGraph().NodeByID("a")
	ctxNode, _ := p.ConfigGraph().NodeByID(types.ContextNodeID)
	found := false
	for _, succ := range p.ConfigGraph().Successors(ctxNode) {
		if succ.ID() == "a" {
			found = true
		}
		if succ.ID() == "b" {
			t.Fatalf("b should not be wired to the context node")
		}
	}
	if !found {
		t.Fatalf("expected ctx -> a edge to exist")
	}
	_ = aCfg

	ss := p.SerializationSources()
	if _, ok := ss["a:source1"]; !ok || len(ss) != 1 {
		t.Fatalf("expected serializationSources = {a:source1}, got %v", ss)
	}
}

// TestUnsatisfiedFilter is spec scenario 4.
func TestUnsatisfiedFilter(t *testing.T) {
	registry := defaultRegistry()
	p, _ := newTestPlanner(t, registry)

	eg := &query.ExecutionGraph{
		Nodes: []query.Node{
			{ID: "source1", SourceID: "tsdb"},
		},
		SinkFilters: []string{"missing"},
	}
	result := p.Plan(context.Background(), noSpan(), eg)
	err := result.Wait(context.Background())
	if err == nil {
		t.Fatalf("expected UnsatisfiedFilterError")
	}
	unsatisfied, ok := err.(*planner.UnsatisfiedFilterError)
	if !ok {
		t.Fatalf("expected *planner.UnsatisfiedFilterError, got %T: %v", err, err)
	}
	if unsatisfied.Key != "missing" {
		t.Fatalf("expected key %q, got %q", "missing", unsatisfied.Key)
	}
}

// TestDuplicateID is spec scenario 5.
func TestDuplicateID(t *testing.T) {
	registry := defaultRegistry()
	p, _ := newTestPlanner(t, registry)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "x", SourceID: "tsdb"},
		{ID: "x", SourceID: "tsdb"},
	}}
	result := p.Plan(context.Background(), noSpan(), eg)
	err := result.Wait(context.Background())
	if _, ok := err.(*planner.DuplicateIDError); !ok {
		t.Fatalf("expected *planner.DuplicateIDError, got %T: %v", err, err)
	}
}

// TestJoinNodeInMiddle is spec scenario 7.
func TestJoinNodeInMiddle(t *testing.T) {
	registry := defaultRegistry()
	p, _ := newTestPlanner(t, registry)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "top", Type: "filter", Sources: []string{"join1"}},
		{ID: "join1", Type: "groupby", Sources: []string{"src1", "src2"}, Joins: true},
		{ID: "src1", SourceID: "tsdb"},
		{ID: "src2", SourceID: "tsdb"},
	}}
	mustPlan(t, p, eg)

	ss := p.SerializationSources()
	if _, ok := ss["top:join1"]; !ok || len(ss) != 1 {
		t.Fatalf("expected serializationSources = {top:join1}, got %v", ss)
	}
}

func idsOf(cfgs []types.OperatorConfig) []string {
	out := make([]string, len(cfgs))
	for i, c := range cfgs {
		out[i] = c.ID()
	}
	return out
}
