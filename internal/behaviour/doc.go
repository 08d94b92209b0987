// Package behaviour assembles the reference steps into the device's complete tasks.
//
// Each Behaviour owns a statically built sequence table and the retry counters of its steps.
// Prepare must be called before every Load: it resets the counters and the per-run protocol
// flags. A table reloaded without Prepare keeps the counters of the previous run.
package behaviour
