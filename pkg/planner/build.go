package planner

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/tsdbquery/planner/pkg/async"
	"github.com/tsdbquery/planner/pkg/types"
)

// buildExecutorGraph materializes the executor graph bottom-up from the
// config graph, per spec.md §4.5. It seeds breadth-first from every node
// whose predecessor set is empty (the context sentinel, and any
// unconnected roots spec.md §4.2 left unwired), then recurses downward
// through buildNodeGraph.
func (p *Planner) buildExecutorGraph() error {
	p.execGraph.AddNode(p.contextSink)
	p.nodesMap[types.ContextNodeID] = p.contextSink

	for _, cfg := range p.configGraph.Nodes() {
		if len(p.configGraph.Predecessors(cfg)) != 0 {
			continue
		}
		if _, err := p.buildNodeGraph(cfg); err != nil {
			return err
		}
	}
	return nil
}

// buildNodeGraph builds (or returns the already-built) executor for cfg,
// recursively building every config-graph successor first (spec.md §4.5
// steps 1-8).
func (p *Planner) buildNodeGraph(cfg types.OperatorConfig) (types.Executor, error) {
	hash := cfg.BuildHashCode()
	if existingID, ok := p.constructed[hash]; ok {
		return p.nodesMap[existingID], nil
	}

	children := p.configGraph.Successors(cfg)
	sources := make([]types.Executor, 0, len(children))
	for _, child := range children {
		exec, err := p.buildNodeGraph(child)
		if err != nil {
			return nil, err
		}
		sources = append(sources, exec)
	}

	if types.IsContextNode(cfg) {
		for _, src := range sources {
			if _, err := p.execGraph.AddEdge(p.contextSink, src); err != nil {
				return nil, err
			}
		}
		return p.contextSink, nil
	}

	f, err := p.resolveFactory(cfg)
	if err != nil {
		return nil, err
	}

	exec, err := f.NewNode(p.pctx, cfg)
	if err != nil {
		return nil, err
	}
	if exec == nil {
		return nil, &NullExecutorError{NodeID: cfg.ID()}
	}

	p.execGraph.AddNode(exec)
	p.nodesMap[cfg.ID()] = exec
	p.constructed[hash] = cfg.ID()

	if ds, ok := exec.(types.DataSource); ok {
		p.dataSources = append(p.dataSources, ds)
	}

	for _, src := range sources {
		if _, err := p.execGraph.AddEdge(exec, src); err != nil {
			return nil, err
		}
	}

	return exec, nil
}

// computeSerializationSources walks the final config graph from the
// context node and populates p.serializationSources with the result-id
// strings the sink should expect (spec.md §4.5).
func (p *Planner) computeSerializationSources() {
	memo := make(map[string]map[string]struct{})
	out := make(map[string]struct{})

	for _, d := range p.configGraph.Successors(p.contextNode) {
		if isSerializationBoundary(d) {
			out[d.ID()] = struct{}{}
			continue
		}
		for x := range p.serializationIDs(d, memo) {
			out[fmt.Sprintf("%s:%s", d.ID(), x)] = struct{}{}
		}
	}

	p.serializationSources = out
}

func isSerializationBoundary(cfg types.OperatorConfig) bool {
	if _, ok := types.IsDataSource(cfg); ok {
		return true
	}
	return cfg.Joins()
}

// serializationIDs returns the set of result ids contributed by cfg,
// memoized by id since the config graph is a DAG and shared ancestors are
// common once push-down has run.
func (p *Planner) serializationIDs(cfg types.OperatorConfig, memo map[string]map[string]struct{}) map[string]struct{} {
	if cached, ok := memo[cfg.ID()]; ok {
		return cached
	}

	if isSerializationBoundary(cfg) {
		result := map[string]struct{}{cfg.ID(): {}}
		memo[cfg.ID()] = result
		return result
	}

	result := make(map[string]struct{})
	memo[cfg.ID()] = result // break cycles defensively; graph is acyclic by invariant
	for _, child := range p.configGraph.Successors(cfg) {
		for id := range p.serializationIDs(child, memo) {
			result[id] = struct{}{}
		}
	}
	return result
}

// initializeAll walks the executor graph depth-first from contextSink,
// grouping each node's successor deferreds before calling its own
// Initialize, and returns a future that resolves once the whole tree is
// ready (spec.md §4.5, §5).
func (p *Planner) initializeAll(ctx context.Context, span trace.Span) *async.Future {
	p.initFutures = make(map[string]*async.Future)
	return p.initializeNode(ctx, span, p.contextSink)
}

func (p *Planner) initializeNode(ctx context.Context, span trace.Span, exec types.Executor) *async.Future {
	id := exec.Config().ID()
	if f, ok := p.initFutures[id]; ok {
		return f
	}

	childFutures := make([]*async.Future, 0)
	for _, succ := range p.execGraph.Successors(exec) {
		childFutures = append(childFutures, p.initializeNode(ctx, span, succ))
	}
	group := async.Group(childFutures...)

	isContextSink := id == types.ContextNodeID
	result := async.Run(func() error {
		if err := group.Wait(ctx); err != nil {
			return err
		}
		if isContextSink {
			return nil
		}
		p.notifyNodeInitStart(ctx, id)
		start := time.Now()
		err := exec.Initialize(ctx, span).Wait(ctx)
		p.notifyNodeInitDone(ctx, id, start, err)
		if err != nil {
			return err
		}
		p.mu.Lock()
		p.initialized[id] = true
		p.mu.Unlock()
		return nil
	})

	p.initFutures[id] = result
	return result
}
