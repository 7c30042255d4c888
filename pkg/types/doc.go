// Package types defines the shared data model of the query planner: the
// declarative operator configuration graph (OperatorConfig, DataSourceConfig,
// ContextNode) and the runtime executor (Executor) it is eventually
// turned into. All other planner packages depend on this one to avoid
// import cycles.
package types
