package planner_test

import (
	"context"
	"testing"

	"github.com/tsdbquery/planner/internal/testfactory"
	"github.com/tsdbquery/planner/pkg/config"
	"github.com/tsdbquery/planner/pkg/planner"
	"github.com/tsdbquery/planner/pkg/query"
	"github.com/tsdbquery/planner/pkg/types"
)

func newLimitedPlanner(t *testing.T, cfg *config.Config) *planner.Planner {
	t.Helper()
	registry := defaultRegistry("filter", "groupby")
	contextSink := testfactory.NewExecutor(types.NewContextNode(), nil)
	return planner.New(context.Background(), registry, contextSink, planner.WithConfig(cfg))
}

func TestMaxNodesExceeded(t *testing.T) {
	cfg := config.Default()
	cfg.MaxNodes = 2
	p := newLimitedPlanner(t, cfg)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "filter1", Type: "filter", Sources: []string{"source1"}},
		{ID: "source1", SourceID: "tsdb"},
		{ID: "extra1", Type: "filter", Sources: []string{"source1"}},
	}}
	result := p.Plan(context.Background(), noSpan(), eg)
	err := result.Wait(context.Background())
	tooMany, ok := err.(*planner.TooManyNodesError)
	if !ok {
		t.Fatalf("expected *planner.TooManyNodesError, got %T: %v", err, err)
	}
	if tooMany.Max != 2 || tooMany.Count != 3 {
		t.Fatalf("unexpected error fields: %+v", tooMany)
	}
}

func TestMaxEdgesExceeded(t *testing.T) {
	cfg := config.Default()
	cfg.MaxEdges = 1
	p := newLimitedPlanner(t, cfg)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "top", Type: "filter", Sources: []string{"join1"}},
		{ID: "join1", Type: "groupby", Sources: []string{"src1", "src2"}, Joins: true},
		{ID: "src1", SourceID: "tsdb"},
		{ID: "src2", SourceID: "tsdb"},
	}}
	result := p.Plan(context.Background(), noSpan(), eg)
	err := result.Wait(context.Background())
	if _, ok := err.(*planner.TooManyEdgesError); !ok {
		t.Fatalf("expected *planner.TooManyEdgesError, got %T: %v", err, err)
	}
}

func TestMaxPushdownDepthExceeded(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPushdownDepth = 1
	p := newLimitedPlanner(t, cfg)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "filter1", Type: "filter", Sources: []string{"group1"}, PushDown: true},
		{ID: "group1", Type: "groupby", Sources: []string{"source1"}, PushDown: true},
		{ID: "source1", SourceID: "tsdb"},
	}}
	result := p.Plan(context.Background(), noSpan(), eg)
	err := result.Wait(context.Background())
	depthErr, ok := err.(*planner.PushdownDepthExceededError)
	if !ok {
		t.Fatalf("expected *planner.PushdownDepthExceededError, got %T: %v", err, err)
	}
	if depthErr.SourceID != "source1" || depthErr.Max != 1 {
		t.Fatalf("unexpected error fields: %+v", depthErr)
	}
}

func TestWithinLimitsStillPlans(t *testing.T) {
	cfg := config.Default()
	cfg.MaxNodes = 10
	cfg.MaxEdges = 10
	cfg.MaxPushdownDepth = 10
	p := newLimitedPlanner(t, cfg)

	eg := &query.ExecutionGraph{Nodes: []query.Node{
		{ID: "filter1", Type: "filter", Sources: []string{"group1"}, PushDown: true},
		{ID: "group1", Type: "groupby", Sources: []string{"source1"}, PushDown: true},
		{ID: "source1", SourceID: "tsdb"},
	}}
	mustPlan(t, p, eg)
}
