package types

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// OperatorConfig is a declarative description of one node in the logical
// execution graph. Implementations are immutable; mutation happens by
// producing a modified copy through a builder (see Config.ToBuilder and
// Source.ToBuilder).
//
// DataSourceConfig and ContextNode both satisfy OperatorConfig; callers
// that need to special-case one of them do so with a type assertion rather
// than a type switch over a closed hierarchy (see IsContextNode).
type OperatorConfig interface {
	// ID returns the node's unique identifier within a single config graph.
	ID() string

	// Type returns the operator's declared type, or "" if unset.
	Type() string

	// Sources returns the ordered ids of this node's upstream operators.
	Sources() []string

	// PushDown reports whether this operator is a candidate for folding
	// into an upstream data source.
	PushDown() bool

	// Joins reports whether this operator combines multiple upstream
	// results into one, making it a serialization boundary (spec.md §4.5).
	Joins() bool

	// BuildHashCode returns a stable 64-bit hash over this config's
	// semantic identity. Two configs that are semantically identical MUST
	// hash identically; the executor builder treats hash equality as
	// config identity (spec.md §9).
	BuildHashCode() uint64
}

// baseConfig is the shared field set embedded by both Config and Source.
type baseConfig struct {
	id       string
	typ      string
	sources  []string
	pushDown bool
	joins    bool
}

func (b baseConfig) ID() string       { return b.id }
func (b baseConfig) Type() string     { return b.typ }
func (b baseConfig) PushDown() bool   { return b.pushDown }
func (b baseConfig) Joins() bool      { return b.joins }

func (b baseConfig) Sources() []string {
	if b.sources == nil {
		return nil
	}
	out := make([]string, len(b.sources))
	copy(out, b.sources)
	return out
}

func (b baseConfig) hashSeed() string {
	var sb strings.Builder
	sb.WriteString(b.id)
	sb.WriteByte('|')
	sb.WriteString(b.typ)
	sb.WriteByte('|')
	for i, s := range b.sources {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s)
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(b.pushDown))
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(b.joins))
	return sb.String()
}

// Config is a plain operator node: no source id, no filter, no push-down
// payload. It is the common case for every non-leaf operator in the config
// graph (filters, group-bys, joins, and so on).
type Config struct {
	baseConfig
}

// NewConfig builds a plain operator config.
func NewConfig(id, typ string, sources []string, pushDown, joins bool) *Config {
	return &Config{baseConfig{id: id, typ: typ, sources: append([]string(nil), sources...), pushDown: pushDown, joins: joins}}
}

// BuildHashCode implements OperatorConfig.
func (c *Config) BuildHashCode() uint64 {
	return xxhash.Sum64String("op|" + c.hashSeed())
}

// ToBuilder returns a builder seeded with this config's current field
// values, for producing a modified copy.
func (c *Config) ToBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: *c}
}

// ConfigBuilder produces modified copies of a Config.
type ConfigBuilder struct {
	cfg Config
}

// SetSources replaces the upstream source id list.
func (b *ConfigBuilder) SetSources(sources []string) *ConfigBuilder {
	b.cfg.sources = append([]string(nil), sources...)
	return b
}

// SetPushDown overrides the push-down eligibility flag.
func (b *ConfigBuilder) SetPushDown(v bool) *ConfigBuilder {
	b.cfg.pushDown = v
	return b
}

// SetType overrides the operator type.
func (b *ConfigBuilder) SetType(t string) *ConfigBuilder {
	b.cfg.typ = t
	return b
}

// Build returns the resulting Config. The receiver remains reusable.
func (b *ConfigBuilder) Build() *Config {
	out := b.cfg
	return &out
}
