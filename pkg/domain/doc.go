/*
Package domain contains the core types of the Pendant behaviour engine.

It defines the vocabulary shared by the controller, the reusable protocol steps and the
behaviour compositions. This package is kept pure and free of I/O, following the same
hexagonal split as the rest of the module: drivers and stores live behind pkg/ports.

# Key Entities

  - StepOutcome: what a step's main function reports for one tick.
  - Command: what a reaction tells the controller to do next.
  - Result: what the controller reports to its caller after one tick.
  - Step: a polled StepBody plus one Reaction per StepOutcome.
  - SequenceTable: the fixed set of steps of one behaviour plus its cursor (Current, Fresh).
  - Report: the summary of one complete behaviour run.
*/
package domain
