// Package planner implements the query planner's core pipeline: it takes a
// logical execution graph and produces a physical executor graph ready to
// stream to a sink. It owns the five cooperating components described by
// the surrounding module — graph model, sink filter resolver, factory setup
// driver, push-down transformer, and executor builder/initializer — and
// exposes them through the single-call Plan lifecycle.
//
// Grounded on the teacher's pkg/engine.Engine: a stateful orchestrator
// constructed once, run once, exposing read-only accessors to its result
// afterward.
package planner
