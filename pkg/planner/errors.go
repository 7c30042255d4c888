package planner

import "fmt"

// DuplicateIDError is raised when two operator configs in the same query
// share an id (spec.md §4.6 step 1, §7).
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("planner: duplicate operator id %q", e.ID)
}

// InvalidFilterError is raised when a sink filter string has zero
// colons-plus-extras or more than one colon (spec.md §4.2, §7).
type InvalidFilterError struct {
	Filter string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("planner: invalid sink filter %q", e.Filter)
}

// UnsatisfiedFilterError is raised when a sink filter id never matched any
// node during setup (spec.md §4.2, §7).
type UnsatisfiedFilterError struct {
	Key string
}

func (e *UnsatisfiedFilterError) Error() string {
	return fmt.Sprintf("planner: sink filter %q was never satisfied", e.Key)
}

// NoFactoryError is raised when the registry has no factory registered for
// a required key (spec.md §4.3 step 3, §4.5 step 4, §7).
type NoFactoryError struct {
	Key string
}

func (e *NoFactoryError) Error() string {
	return fmt.Sprintf("planner: no factory registered for key %q", e.Key)
}

// NullExecutorError is raised when a factory's NewNode returns a nil
// executor (spec.md §4.5 step 5, §7).
type NullExecutorError struct {
	NodeID string
}

func (e *NullExecutorError) Error() string {
	return fmt.Sprintf("planner: factory returned a null executor for node %q", e.NodeID)
}

// TooManyNodesError is raised when the initial execution graph declares
// more nodes than config.Config.MaxNodes allows.
type TooManyNodesError struct {
	Count int
	Max   int
}

func (e *TooManyNodesError) Error() string {
	return fmt.Sprintf("planner: execution graph has %d nodes, exceeding the limit of %d", e.Count, e.Max)
}

// TooManyEdgesError is raised when wiring the initial config graph would
// exceed config.Config.MaxEdges.
type TooManyEdgesError struct {
	Count int
	Max   int
}

func (e *TooManyEdgesError) Error() string {
	return fmt.Sprintf("planner: config graph has %d edges, exceeding the limit of %d", e.Count, e.Max)
}

// PushdownDepthExceededError is raised when the push-down transformer's
// recursive predecessor walk for a source exceeds
// config.Config.MaxPushdownDepth.
type PushdownDepthExceededError struct {
	SourceID string
	Max      int
}

func (e *PushdownDepthExceededError) Error() string {
	return fmt.Sprintf("planner: push-down walk for source %q exceeded the depth limit of %d", e.SourceID, e.Max)
}
