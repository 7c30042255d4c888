package planner

import (
	"strings"

	"github.com/tsdbquery/planner/pkg/types"
)

// parseFilters decodes the sink filter directives of spec.md §4.2 into a
// nodeId -> sourceHint map ("" when the filter carried no hint). Any
// filter string with zero colons-but-malformed, or more than one colon,
// fails with InvalidFilterError.
func parseFilters(filters []string) (map[string]string, error) {
	out := make(map[string]string, len(filters))
	for _, f := range filters {
		if f == "" {
			return nil, &InvalidFilterError{Filter: f}
		}
		switch strings.Count(f, ":") {
		case 0:
			out[f] = ""
		case 1:
			parts := strings.SplitN(f, ":", 2)
			if parts[0] == "" {
				return nil, &InvalidFilterError{Filter: f}
			}
			out[parts[0]] = parts[1]
		default:
			return nil, &InvalidFilterError{Filter: f}
		}
	}
	return out, nil
}

// applyRooting implements spec.md §4.2's per-node rooting policy, invoked
// by the factory setup driver as it visits each node:
//
//   - If node's id is a filter key, wire contextNode -> node (subject to
//     cycle check) and mark the key satisfied.
//   - Otherwise, if node has no predecessors: when no filters were
//     supplied at all, wire it to the context node too; when filters
//     exist, just record it as a root without wiring it.
func (p *Planner) applyRooting(cfg types.OperatorConfig) error {
	id := cfg.ID()

	if _, isFilterKey := p.filterTargets[id]; isFilterKey {
		if _, err := p.configGraph.AddEdge(p.contextNode, cfg); err != nil {
			return err
		}
		p.satisfiedFilters[id] = true
		return nil
	}

	if len(p.configGraph.Predecessors(cfg)) > 0 {
		return nil
	}

	if len(p.filterTargets) == 0 {
		if _, err := p.configGraph.AddEdge(p.contextNode, cfg); err != nil {
			return err
		}
		return nil
	}

	p.roots[id] = true
	return nil
}

// verifyFiltersSatisfied fails with UnsatisfiedFilterError for a filter key
// that was never matched to a node during setup (spec.md §4.2, end of
// setup). When several keys are unsatisfied, which one is reported is not
// defined.
func (p *Planner) verifyFiltersSatisfied() error {
	for key := range p.filterTargets {
		if !p.satisfiedFilters[key] {
			return &UnsatisfiedFilterError{Key: key}
		}
	}
	return nil
}
