package planner

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/tsdbquery/planner/pkg/async"
	"github.com/tsdbquery/planner/pkg/query"
	"github.com/tsdbquery/planner/pkg/types"
)

// Plan runs the planner's single-call lifecycle (spec.md §4.6): it builds
// the initial config graph from eg, resolves sink filters, drives factory
// setup to convergence, then suspends until every data source's filter has
// finished initializing before running the post-setup continuation
// (push-down, serialization sources, executor build, depth-first
// initialize). The returned future resolves once the whole executor tree
// is initialized, or with the first error encountered.
func (p *Planner) Plan(ctx context.Context, span trace.Span, eg *query.ExecutionGraph) *async.Future {
	if err := p.markPlanned(); err != nil {
		return async.Failed(err)
	}
	p.notifyPlanStart(ctx)

	if err := p.buildInitialGraph(eg); err != nil {
		p.notifyPlanEnd(ctx, err)
		return async.Failed(err)
	}

	filters, err := parseFilters(eg.SinkFilters)
	if err != nil {
		p.notifyPlanEnd(ctx, err)
		return async.Failed(err)
	}
	p.filterTargets = filters

	setupCtx := ctx
	if p.cfg.SetupTimeout > 0 {
		var cancel context.CancelFunc
		setupCtx, cancel = context.WithTimeout(ctx, p.cfg.SetupTimeout)
		defer cancel()
	}
	if err := p.runSetup(setupCtx); err != nil {
		p.notifyPlanEnd(ctx, err)
		return async.Failed(err)
	}
	p.configGraph.RebuildSourceNodes()

	var filterFutures []*async.Future
	for _, src := range p.configGraph.SourceNodes() {
		if f := src.Filter(); f != nil {
			filterFutures = append(filterFutures, f.Initialize(setupCtx))
		}
	}
	filtersReady := async.Group(filterFutures...)

	result := async.Run(func() error {
		err := p.continueAfterFilters(ctx, span, filtersReady)
		p.notifyPlanEnd(ctx, err)
		return err
	})
	return result
}

// continueAfterFilters implements spec.md §4.6 step 6: wait for the filter
// group, verify every sink filter was satisfied, push down, compute
// serialization sources, build the executor graph, and initialize it.
func (p *Planner) continueAfterFilters(ctx context.Context, span trace.Span, filtersReady *async.Future) error {
	if err := filtersReady.Wait(ctx); err != nil {
		return err
	}
	if err := p.verifyFiltersSatisfied(); err != nil {
		return err
	}
	if err := p.runPushdown(ctx); err != nil {
		return err
	}
	p.computeSerializationSources()
	if err := p.buildExecutorGraph(); err != nil {
		return err
	}

	initCtx := ctx
	if p.cfg.InitializeTimeout > 0 {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, p.cfg.InitializeTimeout)
		defer cancel()
	}
	return p.initializeAll(initCtx, span).Wait(initCtx)
}

// buildInitialGraph implements spec.md §4.6 step 1: add the context
// sentinel, add every operator node (failing with DuplicateIDError on a
// repeated id), then wire node -> sourceNode edges for every declared
// source name, with a cycle check on each.
func (p *Planner) buildInitialGraph(eg *query.ExecutionGraph) error {
	if p.cfg.MaxNodes > 0 && len(eg.Nodes) > p.cfg.MaxNodes {
		return &TooManyNodesError{Count: len(eg.Nodes), Max: p.cfg.MaxNodes}
	}

	cfgs := make([]types.OperatorConfig, 0, len(eg.Nodes))
	for _, n := range eg.Nodes {
		if p.configGraph.HasNode(n.ID) {
			return &DuplicateIDError{ID: n.ID}
		}
		cfg, err := query.ToOperatorConfig(n, p.decodeFilter)
		if err != nil {
			return err
		}
		p.configGraph.AddNode(cfg)
		cfgs = append(cfgs, cfg)
	}

	byID := make(map[string]types.OperatorConfig, len(cfgs))
	for _, cfg := range cfgs {
		byID[cfg.ID()] = cfg
	}

	edgeCount := 0
	for _, cfg := range cfgs {
		for _, srcName := range cfg.Sources() {
			srcCfg, ok := byID[srcName]
			if !ok {
				continue
			}
			edgeCount++
			if p.cfg.MaxEdges > 0 && edgeCount > p.cfg.MaxEdges {
				return &TooManyEdgesError{Count: edgeCount, Max: p.cfg.MaxEdges}
			}
			if _, err := p.configGraph.AddEdge(cfg, srcCfg); err != nil {
				return err
			}
		}
	}
	return nil
}
