// Package query decodes the inbound logical execution graph: the wire
// payload a caller submits to the planner, pre-validated against a JSON
// schema and decoded into the OperatorConfig/DataSourceConfig instances
// pkg/planner consumes.
//
// Grounded on the teacher's pkg/executor.SchemaValidatorExecutor for the
// gojsonschema usage pattern, and on the shape of the teacher's
// workflow_registry.go payload decoding for the node/edge wire record
// layout.
package query
