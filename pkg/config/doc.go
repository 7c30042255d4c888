// Package config holds planner-wide resource limits and presets, grounded
// on the teacher's pkg/config: a plain struct of tunables plus
// Default/Development/Production/Testing constructors and a Validate pass.
package config
