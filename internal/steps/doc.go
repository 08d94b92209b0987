// Package steps provides the reusable protocol steps the behaviours are assembled from.
//
// Every step is a small non-blocking state machine behind domain.StepBody: Run does one unit
// of work, consumes at most one inbound frame, and reports an outcome. Timeouts are owned here,
// not by the controller, and are measured on the Env clock.
package steps
