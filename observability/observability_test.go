package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v", cfg.SampleRate)
	}
	if cfg.MetricInterval != 15*time.Second {
		t.Errorf("MetricInterval = %v", cfg.MetricInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled defaults", Config{SampleRate: 1}, false},
		{"enabled with endpoint", Config{Enabled: true, Endpoint: "otel:4318", SampleRate: 0.5}, false},
		{"rate above one", Config{SampleRate: 1.5}, true},
		{"enabled without endpoint", Config{Enabled: true, SampleRate: 1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "svc", "dev", "test")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestNewResourceHasServiceName(t *testing.T) {
	res, err := newResource("gladiaflow", "1.2.3", "test")
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" && kv.Value.AsString() == "gladiaflow" {
			found = true
		}
	}
	if !found {
		t.Errorf("service.name missing from %v", res.Attributes())
	}
}

func TestStartSpanRecordsAttributes(t *testing.T) {
	rec := installRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanPoll)
	SetSpanAttribute(ctx, AttrPollTarget, "https://x.test/r/1")
	SetSpanAttribute(ctx, AttrAttempt, 3)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != SpanPoll {
		t.Errorf("name = %q", spans[0].Name())
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrPollTarget].AsString() != "https://x.test/r/1" {
		t.Errorf("poll target attr = %v", attrs[AttrPollTarget])
	}
	if attrs[AttrAttempt].AsInt64() != 3 {
		t.Errorf("attempt attr = %v", attrs[AttrAttempt])
	}
	if _, ok := attrs["unsupported-key"]; ok {
		t.Error("unsupported attribute types should be ignored")
	}
}

func TestSetSpanError(t *testing.T) {
	rec := installRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanSubmit)
	SetSpanError(ctx, fmt.Errorf("boom"))
	span.End()

	s := rec.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("status = %v", s.Status())
	}
	if len(s.Events()) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestSpanHelpersWithoutRecordingSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span"))
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil noop span")
	}
}

func TestJobMetricsNoop(t *testing.T) {
	m, err := NewJobMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewJobMetrics: %v", err)
	}
	ctx := context.Background()
	m.RecordJob(ctx, OutcomeDone, time.Second)
	m.RecordPoll(ctx, "processing")
	m.RecordCall(ctx, "gladia", "ok", time.Millisecond)
}

func TestJobMetricsNilReceiver(t *testing.T) {
	var m *JobMetrics
	m.RecordJob(context.Background(), OutcomeTimeout, time.Second)
	m.RecordPoll(context.Background(), "queued")
	m.RecordCall(context.Background(), "gladia", "error", time.Second)
}

func TestJobMetricsCollected(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewJobMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewJobMetrics: %v", err)
	}
	ctx := context.Background()
	m.RecordJob(ctx, OutcomeDone, 2*time.Second)
	m.RecordJob(ctx, OutcomeTimeout, 3*time.Second)
	m.RecordPoll(ctx, "processing")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[md.Name] += dp.Value
				}
			}
		}
	}
	if totals["transcription.jobs"] != 2 {
		t.Errorf("transcription.jobs = %d, want 2", totals["transcription.jobs"])
	}
	if totals["transcription.polls"] != 1 {
		t.Errorf("transcription.polls = %d, want 1", totals["transcription.polls"])
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("test") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("test") == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestComponentDisabled(t *testing.T) {
	c := NewComponent(Config{}, "gladiaflow", "dev", "development")
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if h := c.Health(context.Background()); h.Message != "export disabled" {
		t.Errorf("Health() = %+v", h)
	}
	if d := c.Describe(); d.Details != "disabled" {
		t.Errorf("Describe() = %+v", d)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("second Stop() error: %v", err)
	}
}
