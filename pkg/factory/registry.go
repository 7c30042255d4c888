package factory

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsdbquery/planner/pkg/types"
)

// Registry is a thread-safe, key-based factory lookup, grounded on the
// teacher's pkg/executor.Registry (register-by-key, read-mostly RWMutex).
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under key. An existing registration for the same
// key is replaced, matching the registry's role as a pure lookup table
// (callers own key uniqueness policy, unlike the teacher's executor
// registry which forbids re-registration of a node type).
func (r *Registry) Register(key string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = f
}

// Lookup returns the factory registered under key, or nil if none is
// registered. The planner treats a nil return as spec.md §7's NoFactory.
func (r *Registry) Lookup(key string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[key]
}

// lowerCaser performs locale-independent case folding for factory lookup
// keys, matching the teacher's direct (if otherwise implicit) dependency on
// golang.org/x/text for this kind of normalization.
var lowerCaser = cases.Lower(language.Und)

// Key resolves the factory lookup key for cfg per spec.md §4.3/§4.5: a
// DataSourceConfig is looked up by its lowercased SourceID; any other
// operator is looked up by its lowercased Type, falling back to its
// lowercased ID when Type is empty.
func Key(cfg types.OperatorConfig) string {
	if ds, ok := types.IsDataSource(cfg); ok {
		return lowerCaser.String(ds.SourceID())
	}
	if cfg.Type() != "" {
		return lowerCaser.String(cfg.Type())
	}
	return lowerCaser.String(cfg.ID())
}
