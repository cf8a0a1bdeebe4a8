// Package tracing wires OpenTelemetry into the document build pipeline. The
// compiler, builder, publisher and sync services open spans through
// StartSpan/EndSpan; when no provider is installed the spans are no-ops.
package tracing
