// Package async provides the one-shot completion objects ("Deferred<void>"
// in spec.md's notation) used to join asynchronous data-source filter
// initialization and depth-first executor initialization.
//
// There is no promise/future library anywhere in the retrieved example pack
// (golang.org/x/sync/errgroup never appears in the teacher's or any sibling
// example repo's go.mod), so this package follows the teacher's own pattern
// for joining background work: a buffered channel carrying a single error,
// generalized into a reusable type instead of being inlined at each call
// site (compare pkg/engine/engine.go's Execute(), which does this inline
// with a local "done := make(chan error, 1)").
package async
