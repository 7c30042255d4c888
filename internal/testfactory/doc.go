// Package testfactory provides small, deterministic Factory
// implementations used by the planner's test suite and the cmd/planrepl
// demo. Real factory behavior is an external collaborator this module does
// not define; these are synthetic stand-ins only.
package testfactory
