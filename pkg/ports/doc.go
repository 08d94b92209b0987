/*
Package ports defines the driven ports (interfaces) of the Pendant engine.

These interfaces decouple the behaviours and their steps from the hardware and from
persistence, so the same sequence tables run against a real UART, an in-memory loopback in
tests, or the simulated coprocessor used by the bench tooling.

# Key Interfaces

  - Link: the UART connection to the BLE coprocessor plus its wake line.
  - Clock: the time source steps use for their own timeouts.
  - Watchdog: fed by the caller between ticks.
  - ReportStore: persists run reports.
  - DistributedLocker: guarantees a single active behaviour per device across processes.
*/
package ports
