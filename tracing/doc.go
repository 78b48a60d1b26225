// Package tracing integrates OpenTelemetry with the scheduling engine.  Each
// facade operation runs inside a span carrying the policy, step and process
// attributes, so a run can be inspected with any OpenTelemetry exporter.
package tracing
