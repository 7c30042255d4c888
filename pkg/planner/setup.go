package planner

import (
	"context"
	"fmt"

	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/graph"
	"github.com/tsdbquery/planner/pkg/types"
)

// runSetup drives the iterative factory setup pass of spec.md §4.3: walk
// upward from every source node, invoke each node's factory exactly once
// per pass, and restart the whole pass from scratch the moment a factory
// mutates the graph. Terminates when a full pass completes with no
// mutation.
func (p *Planner) runSetup(ctx context.Context) error {
	passes := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		passes++
		if p.cfg.MaxSetupPasses > 0 && passes > p.cfg.MaxSetupPasses {
			return fmt.Errorf("planner: factory setup did not converge within %d passes", p.cfg.MaxSetupPasses)
		}
		p.notifySetupPass(ctx, passes)

		mutated, err := p.runSetupPass()
		if err != nil {
			return err
		}
		if !mutated {
			return nil
		}
		p.notifySetupRestart(ctx, passes)
	}
}

// runSetupPass performs one full upward walk from every current source
// node. It returns true the moment any visited node's factory mutates the
// graph, at which point the caller must restart from scratch (spec.md §4.3
// step 3).
func (p *Planner) runSetupPass() (bool, error) {
	visited := make(map[string]bool)

	for _, src := range p.configGraph.SourceNodes() {
		mutated, err := p.setupWalk(src, visited)
		if err != nil {
			return false, err
		}
		if mutated {
			return true, nil
		}
	}
	return false, nil
}

// setupWalk recursively visits cfg and its predecessors (upward, toward
// roots), applying §4.2 rooting and invoking cfg's factory once. Returns
// true if this node's factory mutated the graph, signaling the caller to
// abort the pass.
func (p *Planner) setupWalk(cfg types.OperatorConfig, visited map[string]bool) (bool, error) {
	id := cfg.ID()
	if visited[id] {
		return false, nil
	}
	if types.IsContextNode(cfg) {
		visited[id] = true
		return false, nil
	}

	snapshot := p.configGraph.Snapshot()

	if err := p.applyRooting(cfg); err != nil {
		return false, err
	}

	key := factory.Key(cfg)
	f := p.registry.Lookup(key)
	if f == nil {
		return false, &NoFactoryError{Key: key}
	}
	if err := f.SetupGraph(p.pctx, cfg, p); err != nil {
		return false, err
	}

	if p.graphChangedSince(snapshot, cfg) {
		return true, nil
	}

	visited[id] = true

	for _, pred := range p.configGraph.Predecessors(cfg) {
		mutated, err := p.setupWalk(pred, visited)
		if err != nil {
			return false, err
		}
		if mutated {
			return true, nil
		}
	}
	return false, nil
}

// graphChangedSince compares the live graph's structure around cfg (and
// globally, conservatively) against a prior snapshot, reporting whether
// anything changed. A full vertex/edge-set comparison is used rather than a
// local check, since a factory's rewrite is not required to stay adjacent
// to the node it was invoked on.
func (p *Planner) graphChangedSince(snapshot *graph.ConfigGraphSnapshot, cfg types.OperatorConfig) bool {
	if snapshot.NodeCount() != len(p.configGraph.Nodes()) {
		return true
	}
	for _, n := range p.configGraph.Nodes() {
		if !snapshot.HasNode(n.ID()) {
			return true
		}
		live := p.configGraph.Predecessors(n)
		prior := snapshot.Predecessors(n)
		if len(live) != len(prior) {
			return true
		}
		seen := make(map[string]bool, len(prior))
		for _, p := range prior {
			seen[p.ID()] = true
		}
		for _, l := range live {
			if !seen[l.ID()] {
				return true
			}
		}
	}
	return false
}
