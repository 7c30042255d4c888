// Package observer provides an optional event-notification layer for plan
// lifecycle events, grounded on the teacher's pkg/observer (Event struct,
// Observer interface, Manager fan-out, NoOp/Console defaults).
package observer
