package planner

import (
	"context"

	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/graph"
	"github.com/tsdbquery/planner/pkg/types"
)

// runPushdown folds eligible upstream operators into each data source, per
// spec.md §4.4. It operates source by source; each source's fold pass uses
// its own read-only snapshot for predecessor enumeration while mutating the
// live graph directly.
func (p *Planner) runPushdown(ctx context.Context) error {
	for _, src := range p.configGraph.SourceNodes() {
		if err := p.pushdownForSource(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

func (p *Planner) pushdownForSource(ctx context.Context, src types.DataSourceConfig) error {
	sourceFactory, err := p.resolveFactory(src)
	if err != nil {
		return err
	}

	var sCfg types.OperatorConfig = src
	snapshot := p.configGraph.Snapshot()

	var pushDowns []types.OperatorConfig
	for _, pred := range snapshot.Predecessors(sCfg) {
		p.configGraph.RemoveEdge(pred, sCfg)
		if _, err := p.attemptPushdown(pred, sCfg, sourceFactory, snapshot, &pushDowns, 1); err != nil {
			return err
		}
	}

	if len(pushDowns) == 0 {
		return nil
	}

	rebuilt := src.ToBuilder().SetPushDownNodes(pushDowns).Build()
	if err := p.configGraph.Replace(sCfg, rebuilt); err != nil {
		return err
	}
	for _, n := range pushDowns {
		p.notifyPushdownFold(ctx, src.ID(), n.ID())
	}
	return nil
}

// attemptPushdown implements the recursive eligibility walk of spec.md
// §4.4. s is the originating data source and stays fixed for the whole
// walk; n's edge to whatever it used to feed has already been cut by the
// caller before this call. depth counts the predecessor hops taken from s
// and is bounded by config.Config.MaxPushdownDepth.
//
// When n is eligible: n is appended to pushDowns (nearest-to-source first,
// since this happens before recursing into n's own predecessors), each of
// n's predecessors is detached from n and walked the same way, and n is
// then dropped from the live graph if it has neither successors nor
// predecessors left; a node that still feeds another operator stays in
// place.
//
// When n is not eligible, the walk stops there: n is reconnected directly
// to s, splicing it (and everything folded above it) out of the path
// between n and the source.
func (p *Planner) attemptPushdown(n, s types.OperatorConfig, sourceFactory factory.Factory, snapshot *graph.ConfigGraphSnapshot, pushDowns *[]types.OperatorConfig, depth int) (bool, error) {
	if p.cfg.MaxPushdownDepth > 0 && depth > p.cfg.MaxPushdownDepth {
		return false, &PushdownDepthExceededError{SourceID: s.ID(), Max: p.cfg.MaxPushdownDepth}
	}

	if !p.isPushdownEligible(n, sourceFactory) {
		if _, err := p.configGraph.AddEdge(n, s); err != nil {
			return false, err
		}
		return false, nil
	}

	*pushDowns = append(*pushDowns, n)

	for _, pred := range snapshot.Predecessors(n) {
		p.configGraph.RemoveEdge(pred, n)
		if _, err := p.attemptPushdown(pred, s, sourceFactory, snapshot, pushDowns, depth+1); err != nil {
			return false, err
		}
	}

	if len(p.configGraph.Successors(n)) == 0 && len(p.configGraph.Predecessors(n)) == 0 {
		p.configGraph.RemoveNode(n)
	}
	return true, nil
}

func (p *Planner) isPushdownEligible(n types.OperatorConfig, sourceFactory factory.Factory) bool {
	if types.IsContextNode(n) {
		return false
	}
	return sourceFactory.SupportsPushdown(n.Type()) && n.PushDown()
}
