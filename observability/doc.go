// Package observability wires OpenTelemetry tracing and metrics for
// transcription jobs.
//
// Tracing:
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanPoll)
//	defer span.End()
//
// Metrics:
//
//	m, err := observability.NewJobMetrics(observability.Meter(observability.InstrumentationName))
//	m.RecordJob(ctx, observability.OutcomeDone, time.Since(start))
//
// Setup installs OTLP/HTTP exporters as the global providers when enabled;
// when disabled the global no-op providers stay in place.
package observability
