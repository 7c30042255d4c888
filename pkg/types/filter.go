package types

import (
	"context"

	"github.com/tsdbquery/planner/pkg/async"
)

// Filter is the serde-configuration filter carried by a DataSourceConfig. It
// must be asynchronously initialized before the sink can rely on the source
// it is attached to (spec.md §3, §4.6 step 5).
type Filter interface {
	// Initialize kicks off the filter's async setup and returns a future
	// that resolves once the filter is ready to gate results.
	Initialize(ctx context.Context) *async.Future
}

// NoopFilter is a Filter that is immediately ready. It is useful for tests
// and for data sources that carry no serde-level filtering.
type NoopFilter struct{}

// Initialize implements Filter.
func (NoopFilter) Initialize(ctx context.Context) *async.Future {
	return async.Resolved()
}
