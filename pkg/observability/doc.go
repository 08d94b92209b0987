/*
Package observability turns controller lifecycle events into structured logs and Prometheus
metrics.

Both are exposed as domain.LifecycleHooks so they compose with caller hooks through
LifecycleHooks.Merge.
*/
package observability
