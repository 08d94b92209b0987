/*
Package dsl provides a fluent builder for the static sequence tables that make up a behaviour.

Most reactions of a step return a constant command. The builder collapses that boilerplate into
a declarative outcome→command table per step and fills every unused outcome with its default,
so only the Redo and ActionA..D reactions need executable logic.

Defaults applied by Build:

  - Nothing, Abort and ActionA..D: DoNothing.
  - CriticalAbort: Critical.
  - Redo: DoNothing (a step with a retry path sets it with Redo).
  - NextStep: must be declared with Next or Last.

Example usage:

	b := dsl.New("reset_alert")

	b.Add(0, "wake", wake).Next(1).Redo(wakeRetry.Redo)
	b.Add(1, "clear_alert", clear).Next(2).Redo(clearRetry.Redo)
	b.Add(2, "sleep", sleep).Last()

	table, err := b.Build()
*/
package dsl
