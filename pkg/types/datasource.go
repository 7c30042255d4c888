package types

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DataSourceConfig is an OperatorConfig that reads time-series data. It
// additionally carries the factory lookup key (SourceID) and, after a
// successful push-down pass, the ordered list of operators folded into it
// (spec.md §3, §4.4).
type DataSourceConfig interface {
	OperatorConfig

	// SourceID is the factory registry key for this source.
	SourceID() string

	// Filter is the optional serde-level filter gating this source's
	// output; nil if none was configured.
	Filter() Filter

	// PushDownNodes returns the operators folded into this source by the
	// push-down transformer, nearest-to-source first. Empty until
	// push-down has run.
	PushDownNodes() []OperatorConfig

	// ToBuilder returns a builder seeded with this source's current field
	// values, for producing the rebuilt copy push-down installs via
	// ConfigGraph.Replace (spec.md §4.4).
	ToBuilder() *SourceBuilder
}

// Source is the concrete DataSourceConfig implementation.
type Source struct {
	baseConfig
	sourceID      string
	filter        Filter
	pushDownNodes []OperatorConfig
}

// NewSource builds a leaf data-source config.
func NewSource(id, sourceID string, sources []string, pushDown bool, filter Filter) *Source {
	return &Source{
		baseConfig: baseConfig{id: id, typ: "", sources: append([]string(nil), sources...), pushDown: pushDown, joins: false},
		sourceID:   sourceID,
		filter:     filter,
	}
}

// SourceID implements DataSourceConfig.
func (s *Source) SourceID() string { return s.sourceID }

// Filter implements DataSourceConfig.
func (s *Source) Filter() Filter { return s.filter }

// PushDownNodes implements DataSourceConfig.
func (s *Source) PushDownNodes() []OperatorConfig {
	if s.pushDownNodes == nil {
		return nil
	}
	out := make([]OperatorConfig, len(s.pushDownNodes))
	copy(out, s.pushDownNodes)
	return out
}

// BuildHashCode implements OperatorConfig. The push-down payload is part of
// the hash so that rebuilding a source with a different fold set produces a
// distinct executor (spec.md §4.5 step 1), while re-running push-down to a
// fixed point (spec.md §8 idempotence) leaves the hash unchanged.
func (s *Source) BuildHashCode() uint64 {
	var sb strings.Builder
	sb.WriteString("src|")
	sb.WriteString(s.hashSeed())
	sb.WriteByte('|')
	sb.WriteString(s.sourceID)
	sb.WriteByte('|')
	for i, n := range s.pushDownNodes {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(n.ID())
	}
	return xxhash.Sum64String(sb.String())
}

// ToBuilder returns a builder seeded with this source's current field
// values, for producing a modified copy (spec.md §4.4's
// "s.toBuilder().setPushDownNodes(pushDowns).build()").
func (s *Source) ToBuilder() *SourceBuilder {
	return &SourceBuilder{src: *s}
}

// SourceBuilder produces modified copies of a Source.
type SourceBuilder struct {
	src Source
}

// SetPushDownNodes sets the folded-in operator list, in traversal order.
func (b *SourceBuilder) SetPushDownNodes(nodes []OperatorConfig) *SourceBuilder {
	b.src.pushDownNodes = append([]OperatorConfig(nil), nodes...)
	return b
}

// SetSources replaces the upstream source id list.
func (b *SourceBuilder) SetSources(sources []string) *SourceBuilder {
	b.src.sources = append([]string(nil), sources...)
	return b
}

// SetFilter replaces the filter.
func (b *SourceBuilder) SetFilter(f Filter) *SourceBuilder {
	b.src.filter = f
	return b
}

// Build returns the resulting Source. The receiver remains reusable.
func (b *SourceBuilder) Build() *Source {
	out := b.src
	return &out
}

// IsDataSource reports whether cfg is a DataSourceConfig, the type-assertion
// branch spec.md §9 calls for instead of an inheritance check.
func IsDataSource(cfg OperatorConfig) (DataSourceConfig, bool) {
	ds, ok := cfg.(DataSourceConfig)
	return ds, ok
}
