// Package logging provides structured logging with context propagation for
// the query planner, grounded on the teacher's pkg/logging: a thin wrapper
// around the standard library's log/slog rather than a third-party logging
// library (the teacher itself reaches for stdlib slog here, not zap or
// zerolog, so that is the idiom being imitated).
package logging
