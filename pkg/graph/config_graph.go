package graph

import "github.com/tsdbquery/planner/pkg/types"

// ConfigGraph is the directed acyclic multigraph over OperatorConfig that
// spec.md §3 defines: edges point parent to child (parent is upstream,
// consumes the child's output), self-loops are forbidden, and
// sourceNodes always equals the set of DataSourceConfig nodes currently in
// the graph (spec.md invariant 3).
type ConfigGraph struct {
	g           *multigraph[types.OperatorConfig]
	sourceNodes map[string]types.DataSourceConfig
}

// NewConfigGraph creates an empty ConfigGraph.
func NewConfigGraph() *ConfigGraph {
	return &ConfigGraph{
		g:           newMultigraph[types.OperatorConfig](types.OperatorConfig.ID),
		sourceNodes: make(map[string]types.DataSourceConfig),
	}
}

// AddNode inserts a node with no edges, if it is not already present.
func (cg *ConfigGraph) AddNode(cfg types.OperatorConfig) {
	cg.g.addNode(cfg)
	cg.trackSource(cfg)
}

// HasNode reports whether id is present in the graph.
func (cg *ConfigGraph) HasNode(id string) bool {
	return cg.g.hasNode(id)
}

// NodeByID returns the node with the given id, if present.
func (cg *ConfigGraph) NodeByID(id string) (types.OperatorConfig, bool) {
	return cg.g.nodeByID(id)
}

// Nodes returns every node currently in the graph, in no particular order.
func (cg *ConfigGraph) Nodes() []types.OperatorConfig {
	return cg.g.nodeList()
}

// Predecessors returns cfg's upstream neighbors (the nodes that consume
// cfg's output).
func (cg *ConfigGraph) Predecessors(cfg types.OperatorConfig) []types.OperatorConfig {
	return cg.g.predecessors(cfg.ID())
}

// Successors returns cfg's downstream neighbors (the nodes cfg consumes
// output from).
func (cg *ConfigGraph) Successors(cfg types.OperatorConfig) []types.OperatorConfig {
	return cg.g.successors(cfg.ID())
}

// AddEdge inserts an edge from -> to (from is upstream of to). It fails with
// a *CycleError and leaves the graph unchanged if the edge would create a
// cycle or be a self-loop. Returns whether the edge was newly added
// (spec.md §4.1).
func (cg *ConfigGraph) AddEdge(from, to types.OperatorConfig) (bool, error) {
	if from.ID() == to.ID() {
		return false, NewCycleError(from.ID(), to.ID())
	}
	cg.g.addNode(from)
	cg.g.addNode(to)
	if cg.g.wouldCycle(from.ID(), to.ID()) {
		return false, NewCycleError(from.ID(), to.ID())
	}
	added := cg.g.addEdge(from, to)
	cg.trackSource(from)
	cg.trackSource(to)
	return added, nil
}

// RemoveEdge removes the edge from -> to. If an endpoint becomes orphan (no
// predecessors and no successors) it is dropped from the graph entirely,
// including sourceNodes membership (spec.md §4.1).
func (cg *ConfigGraph) RemoveEdge(from, to types.OperatorConfig) bool {
	removed := cg.g.removeEdgeRaw(from.ID(), to.ID())
	if !removed {
		return false
	}
	for _, id := range []string{from.ID(), to.ID()} {
		if cg.g.hasNode(id) && cg.g.isOrphan(id) {
			cg.g.removeNodeRaw(id)
			delete(cg.sourceNodes, id)
		}
	}
	return true
}

// RemoveNode drops cfg and every incident edge, updating sourceNodes.
func (cg *ConfigGraph) RemoveNode(cfg types.OperatorConfig) bool {
	removed := cg.g.removeNodeRaw(cfg.ID())
	if removed {
		delete(cg.sourceNodes, cfg.ID())
	}
	return removed
}

// Replace atomically swaps oldCfg for newCfg: it gathers oldCfg's
// predecessor and successor lists, detaches oldCfg, inserts newCfg, and
// reattaches every edge with the same orientation, re-checking acyclicity
// after each reattachment. On cycle it fails with a *CycleError; per
// spec.md §4.1 this leaves the planner in an unrecoverable state, since
// oldCfg has already been detached.
func (cg *ConfigGraph) Replace(oldCfg, newCfg types.OperatorConfig) error {
	predIDs := cg.g.predecessorIDs(oldCfg.ID())
	succIDs := cg.g.successorIDs(oldCfg.ID())
	preds := make([]types.OperatorConfig, len(predIDs))
	for i, id := range predIDs {
		preds[i], _ = cg.g.nodeByID(id)
	}
	succs := make([]types.OperatorConfig, len(succIDs))
	for i, id := range succIDs {
		succs[i], _ = cg.g.nodeByID(id)
	}

	cg.g.removeNodeRaw(oldCfg.ID())
	delete(cg.sourceNodes, oldCfg.ID())

	cg.g.addNode(newCfg)
	cg.trackSource(newCfg)

	for _, p := range preds {
		if cg.g.wouldCycle(p.ID(), newCfg.ID()) {
			return NewCycleError(p.ID(), newCfg.ID())
		}
		cg.g.addEdge(p, newCfg)
		cg.trackSource(p)
	}
	for _, s := range succs {
		if cg.g.wouldCycle(newCfg.ID(), s.ID()) {
			return NewCycleError(newCfg.ID(), s.ID())
		}
		cg.g.addEdge(newCfg, s)
		cg.trackSource(s)
	}
	return nil
}

// SourceNodes returns every DataSourceConfig currently in the graph.
func (cg *ConfigGraph) SourceNodes() []types.DataSourceConfig {
	out := make([]types.DataSourceConfig, 0, len(cg.sourceNodes))
	for _, ds := range cg.sourceNodes {
		out = append(out, ds)
	}
	return out
}

// RebuildSourceNodes rescans every node in the graph and rebuilds
// sourceNodes from scratch, the refresh spec.md §4.3 requires after a
// factory setup pass may have rewritten the graph.
func (cg *ConfigGraph) RebuildSourceNodes() {
	cg.sourceNodes = make(map[string]types.DataSourceConfig)
	for _, cfg := range cg.g.nodeList() {
		cg.trackSource(cfg)
	}
}

// Snapshot returns a read-only, point-in-time copy of the graph's vertex and
// edge sets, used by the push-down transformer to enumerate predecessors
// stably while the live graph mutates (spec.md §4.4, §9).
func (cg *ConfigGraph) Snapshot() *ConfigGraphSnapshot {
	return &ConfigGraphSnapshot{g: cg.g.clone()}
}

func (cg *ConfigGraph) trackSource(cfg types.OperatorConfig) {
	if ds, ok := types.IsDataSource(cfg); ok {
		cg.sourceNodes[cfg.ID()] = ds
	}
}

// ConfigGraphSnapshot is a frozen copy of a ConfigGraph's structure.
type ConfigGraphSnapshot struct {
	g *multigraph[types.OperatorConfig]
}

// Predecessors returns cfg's upstream neighbors as of the snapshot.
func (s *ConfigGraphSnapshot) Predecessors(cfg types.OperatorConfig) []types.OperatorConfig {
	return s.g.predecessors(cfg.ID())
}

// HasNode reports whether id existed in the graph as of the snapshot.
func (s *ConfigGraphSnapshot) HasNode(id string) bool {
	return s.g.hasNode(id)
}

// NodeCount returns the number of nodes present at the time of the
// snapshot.
func (s *ConfigGraphSnapshot) NodeCount() int {
	return len(s.g.nodeList())
}

// IsOrphan reports whether id had neither predecessors nor successors as of
// the snapshot.
func (s *ConfigGraphSnapshot) IsOrphan(id string) bool {
	return s.g.hasNode(id) && s.g.isOrphan(id)
}
