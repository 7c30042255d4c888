package planner

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tsdbquery/planner/pkg/async"
	"github.com/tsdbquery/planner/pkg/config"
	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/graph"
	"github.com/tsdbquery/planner/pkg/logging"
	"github.com/tsdbquery/planner/pkg/observer"
	"github.com/tsdbquery/planner/pkg/query"
	"github.com/tsdbquery/planner/pkg/telemetry"
	"github.com/tsdbquery/planner/pkg/types"
)

// Planner is a single-use, stateful orchestrator: construct once, call Plan
// at most once, then read the exposed accessors (spec.md §3 Lifecycle).
type Planner struct {
	mu sync.Mutex

	id  string
	cfg *config.Config

	pctx         factory.Context
	registry     *factory.Registry
	contextSink  types.Executor
	decodeFilter query.FilterDecoder

	logger    *logging.Logger
	observers *observer.Manager
	telemetry *telemetry.Provider

	contextNode *types.ContextNode
	configGraph *graph.ConfigGraph
	execGraph   *graph.ExecutorGraph

	satisfiedFilters map[string]bool
	filterTargets    map[string]string // nodeId -> sourceHint (may be "")
	roots            map[string]bool

	nodesMap    map[string]types.Executor
	constructed map[uint64]string // hash -> node id, for buildHashCode dedup
	dataSources []types.DataSource

	serializationSources map[string]struct{}
	initialized          map[string]bool
	initFutures          map[string]*async.Future

	planned   bool
	startedAt time.Time
}

// Option configures a Planner at construction time.
type Option func(*Planner)

// WithConfig overrides the planner's resource limits.
func WithConfig(cfg *config.Config) Option {
	return func(p *Planner) { p.cfg = cfg }
}

// WithLogger overrides the planner's logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// WithObserver registers an additional lifecycle observer.
func WithObserver(obs observer.Observer) Option {
	return func(p *Planner) { p.observers.Register(obs) }
}

// WithTelemetry attaches a telemetry provider.
func WithTelemetry(t *telemetry.Provider) Option {
	return func(p *Planner) { p.telemetry = t }
}

// WithFilterDecoder overrides how data-source filter payloads are decoded.
func WithFilterDecoder(fd query.FilterDecoder) Option {
	return func(p *Planner) { p.decodeFilter = fd }
}

// New constructs a Planner. pctx is forwarded to factories unmodified;
// registry resolves factories by key; contextSink is the caller's
// pre-created root executor the context sentinel maps to (spec.md §6).
func New(pctx factory.Context, registry *factory.Registry, contextSink types.Executor, opts ...Option) *Planner {
	p := &Planner{
		id:                    uuid.NewString(),
		cfg:                   config.Default(),
		pctx:                  pctx,
		registry:              registry,
		contextSink:           contextSink,
		logger:                logging.New(logging.DefaultConfig()),
		observers:             observer.NewManager(),
		contextNode:           types.NewContextNode(),
		configGraph:           graph.NewConfigGraph(),
		execGraph:             graph.NewExecutorGraph(),
		satisfiedFilters:      make(map[string]bool),
		filterTargets:         make(map[string]string),
		roots:                 make(map[string]bool),
		nodesMap:              make(map[string]types.Executor),
		constructed:           make(map[uint64]string),
		serializationSources:  make(map[string]struct{}),
		initialized:           make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithPlanID(p.id)
	p.configGraph.AddNode(p.contextNode)
	return p
}

// ID returns this planner's unique identifier, used to tag telemetry and
// log lines for a given Plan call.
func (p *Planner) ID() string { return p.id }

// Graph returns the executor graph. Immutable once Plan has resolved
// (spec.md §6).
func (p *Planner) Graph() *graph.ExecutorGraph { return p.execGraph }

// ConfigGraph returns the config graph (spec.md §6).
func (p *Planner) ConfigGraph() *graph.ConfigGraph { return p.configGraph }

// Sources returns the data-source executors in order of construction
// (spec.md §4.5 step 7, §6).
func (p *Planner) Sources() []types.DataSource {
	out := make([]types.DataSource, len(p.dataSources))
	copy(out, p.dataSources)
	return out
}

// SerializationSources returns the set of result-id strings the sink should
// expect (spec.md §4.5, §6).
func (p *Planner) SerializationSources() map[string]struct{} {
	out := make(map[string]struct{}, len(p.serializationSources))
	for k := range p.serializationSources {
		out[k] = struct{}{}
	}
	return out
}

// NodeForID returns the executor built for id, or nil if none exists
// (spec.md §6).
func (p *Planner) NodeForID(id string) types.Executor {
	return p.nodesMap[id]
}

// AddEdge implements factory.GraphMutator.
func (p *Planner) AddEdge(from, to types.OperatorConfig) (bool, error) {
	return p.configGraph.AddEdge(from, to)
}

// RemoveEdge implements factory.GraphMutator.
func (p *Planner) RemoveEdge(from, to types.OperatorConfig) bool {
	return p.configGraph.RemoveEdge(from, to)
}

// RemoveNode implements factory.GraphMutator.
func (p *Planner) RemoveNode(cfg types.OperatorConfig) bool {
	return p.configGraph.RemoveNode(cfg)
}

// Replace implements factory.GraphMutator.
func (p *Planner) Replace(oldCfg, newCfg types.OperatorConfig) error {
	return p.configGraph.Replace(oldCfg, newCfg)
}

// resolveFactory looks up the factory for cfg by the §4.3/§4.5 key rules,
// returning a *NoFactoryError if none is registered.
func (p *Planner) resolveFactory(cfg types.OperatorConfig) (factory.Factory, error) {
	key := factory.Key(cfg)
	f := p.registry.Lookup(key)
	if f == nil {
		return nil, &NoFactoryError{Key: key}
	}
	return f, nil
}

func (p *Planner) markPlanned() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.planned {
		return fmt.Errorf("planner: Plan has already been called on this planner")
	}
	p.planned = true
	p.startedAt = time.Now()
	return nil
}
