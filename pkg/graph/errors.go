package graph

import "fmt"

// CycleError is returned when an edge addition (or reattachment during
// Replace) would create a cycle. A rejected AddEdge leaves the graph
// unchanged (spec.md §4.1, §7); a failed Replace has already detached the
// old node.
type CycleError struct {
	From string
	To   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("graph: adding edge %q -> %q would create a cycle", e.From, e.To)
}

// NewCycleError constructs a CycleError for the given endpoint ids.
func NewCycleError(from, to string) error {
	return &CycleError{From: from, To: to}
}
