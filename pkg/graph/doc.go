// Package graph implements the two directed acyclic multigraphs spec.md §3
// defines (ConfigGraph over OperatorConfig, ExecutorGraph over Executor):
// constant-time node/edge mutation, predecessor/successor iteration, and an
// O(V+E) cycle check run after every edge addition. Edges point parent to
// child, where the parent is upstream and consumes the child's output
// (spec.md §3's "Edges point parent → child").
//
// Grounded on the teacher's pkg/graph (adjacency-map traversal,
// TopologicalSort/DetectCycles), generalized from a one-shot topological
// sort into a live, mutable graph whose acyclicity is maintained
// incrementally.
package graph
