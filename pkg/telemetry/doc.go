// Package telemetry wires OpenTelemetry tracing and Prometheus-exported
// metrics for the planner, grounded on the teacher's pkg/telemetry.
package telemetry
