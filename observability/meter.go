package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/gladiaflow/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Insecure       bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter installs a periodic OTLP/HTTP meter provider as the global
// provider. The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Job outcomes recorded on transcription.jobs.
const (
	OutcomeSubmitted = "submitted"
	OutcomeDone      = "done"
	OutcomeFailed    = "failed"
	OutcomeTimeout   = "timeout"
	OutcomeError     = "error"
)

// JobMetrics holds the instruments recorded by the orchestrator and the
// service client.
type JobMetrics struct {
	jobs         metric.Int64Counter
	polls        metric.Int64Counter
	jobDuration  metric.Float64Histogram
	calls        metric.Int64Counter
	callDuration metric.Float64Histogram
}

// NewJobMetrics creates the instruments on meter.
func NewJobMetrics(meter metric.Meter) (*JobMetrics, error) {
	jobs, err := meter.Int64Counter("transcription.jobs",
		metric.WithDescription("Transcription jobs by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.jobs counter: %w", err)
	}

	polls, err := meter.Int64Counter("transcription.polls",
		metric.WithDescription("Status reads issued while waiting for jobs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.polls counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram("transcription.job.duration",
		metric.WithDescription("Time from submission to terminal outcome"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.job.duration histogram: %w", err)
	}

	calls, err := meter.Int64Counter("transcription.api.calls",
		metric.WithDescription("Calls to the transcription service API"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.api.calls counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("transcription.api.duration",
		metric.WithDescription("Duration of transcription service API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.api.duration histogram: %w", err)
	}

	return &JobMetrics{
		jobs:         jobs,
		polls:        polls,
		jobDuration:  jobDuration,
		calls:        calls,
		callDuration: callDuration,
	}, nil
}

// RecordJob counts a finished job and its duration. A nil receiver is a no-op.
func (m *JobMetrics) RecordJob(ctx context.Context, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.jobs.Add(ctx, 1, attrs)
	m.jobDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordPoll counts one status read and the status it returned.
func (m *JobMetrics) RecordPoll(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.polls.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordCall counts one API call made through a provider.
func (m *JobMetrics) RecordCall(ctx context.Context, provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}
