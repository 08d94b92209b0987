/*
Package pendant drives the coprocessor of a battery-powered personal alarm through complete
behaviours (raise an alert, broadcast, reset, push characteristics).

# Concept

A behaviour is a fixed table of steps. Each step is a small non-blocking state machine that
talks to the BLE coprocessor over a checksummed UART frame protocol and reports an outcome; the
table maps every outcome to a command for the controller (stay, reload, go to another step,
finish, abort). The controller advances exactly one step by one unit of work per tick and never
blocks, so the caller's loop can feed a hardware watchdog between ticks.

Device wraps that loop: it prepares and loads a behaviour, ticks it to a terminal result, and
returns a domain.Report describing the run. A CriticalError result is not a Go error; Go errors
are reserved for misuse, cancellation, and lock or store failures.

# Usage

	link := sim.New(sim.WithPeerReads(1))
	dev, err := pendant.New(link, pendant.WithClock(memory.NewManualClock(time.Now())))
	if err != nil {
		log.Fatal(err)
	}

	report, err := dev.Run(ctx, "alert")
	if err != nil {
		log.Fatal(err)
	}
	if !report.Succeeded() {
		// Abandon the interaction and go back to sleep.
		log.Printf("alert failed: %v", report.Failure)
	}
*/
package pendant
