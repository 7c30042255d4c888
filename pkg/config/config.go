package config

import "time"

// Config holds planner resource limits. All fields are centralized here for
// easy management and validation, the same role the teacher's
// pkg/config.Config plays for workflow execution limits.
type Config struct {
	// MaxSetupPasses bounds the factory setup driver's restart-on-mutation
	// loop (spec.md §4.3, §9 "quadratic in the worst case but correct").
	// 0 means unlimited.
	MaxSetupPasses int

	// MaxPushdownDepth bounds the push-down transformer's recursive
	// predecessor walk per data source. 0 means unlimited.
	MaxPushdownDepth int

	// MaxNodes bounds the number of nodes accepted into the config graph
	// while it is being built from the query's execution graph.
	MaxNodes int

	// MaxEdges bounds the number of edges accepted into the config graph.
	MaxEdges int

	// SetupTimeout bounds how long the factory setup driver and sink
	// filter resolution may run before the plan fails.
	SetupTimeout time.Duration

	// InitializeTimeout bounds how long the depth-first executor
	// initialization walk may run before the plan fails.
	InitializeTimeout time.Duration
}

// Default returns a Config with production-sane default values.
func Default() *Config {
	return &Config{
		MaxSetupPasses:    1000,
		MaxPushdownDepth:  64,
		MaxNodes:          1000,
		MaxEdges:          5000,
		SetupTimeout:      30 * time.Second,
		InitializeTimeout: 60 * time.Second,
	}
}

// Development returns a Config with relaxed limits for local iteration.
func Development() *Config {
	cfg := Default()
	cfg.SetupTimeout = 5 * time.Minute
	cfg.InitializeTimeout = 5 * time.Minute
	return cfg
}

// Production returns a Config with strict limits for serving real queries.
func Production() *Config {
	cfg := Default()
	cfg.MaxNodes = 500
	cfg.MaxEdges = 2000
	cfg.SetupTimeout = 15 * time.Second
	cfg.InitializeTimeout = 30 * time.Second
	return cfg
}

// Testing returns a Config with small limits suited to unit tests.
func Testing() *Config {
	cfg := Default()
	cfg.MaxSetupPasses = 100
	cfg.MaxPushdownDepth = 32
	cfg.MaxNodes = 100
	cfg.MaxEdges = 500
	cfg.SetupTimeout = 5 * time.Second
	cfg.InitializeTimeout = 5 * time.Second
	return cfg
}

// Validate checks that every limit is non-negative.
func (c *Config) Validate() error {
	switch {
	case c.MaxSetupPasses < 0:
		return ErrInvalidMaxSetupPasses
	case c.MaxPushdownDepth < 0:
		return ErrInvalidMaxPushdownDepth
	case c.MaxNodes < 0:
		return ErrInvalidMaxNodes
	case c.MaxEdges < 0:
		return ErrInvalidMaxEdges
	case c.SetupTimeout < 0:
		return ErrInvalidSetupTimeout
	case c.InitializeTimeout < 0:
		return ErrInvalidInitializeTimeout
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
