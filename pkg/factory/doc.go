// Package factory defines the external operator-factory collaborator
// boundary (spec.md §1, "out of scope: operator factory registry lookup;
// factory behavior") and a thread-safe keyed registry for it, grounded on
// the teacher's pkg/executor.Registry.
package factory
