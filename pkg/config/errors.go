package config

import "errors"

// Sentinel errors for Config.Validate.
var (
	ErrInvalidMaxSetupPasses    = errors.New("config: MaxSetupPasses must be >= 0")
	ErrInvalidMaxPushdownDepth  = errors.New("config: MaxPushdownDepth must be >= 0")
	ErrInvalidMaxNodes          = errors.New("config: MaxNodes must be >= 0")
	ErrInvalidMaxEdges          = errors.New("config: MaxEdges must be >= 0")
	ErrInvalidSetupTimeout      = errors.New("config: SetupTimeout must be >= 0")
	ErrInvalidInitializeTimeout = errors.New("config: InitializeTimeout must be >= 0")
)
