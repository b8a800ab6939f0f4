package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func shutdownCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate   float64
		expect sdktrace.SamplingDecision
	}{
		{1.0, sdktrace.RecordAndSample},
		{2.0, sdktrace.RecordAndSample},
		{0, sdktrace.Drop},
		{-1, sdktrace.Drop},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			res := samplerFor(tc.rate).ShouldSample(sdktrace.SamplingParameters{
				ParentContext: context.Background(),
				TraceID:       trace.TraceID{1},
				Name:          "x",
			})
			if res.Decision != tc.expect {
				t.Errorf("expected %v, got %v", tc.expect, res.Decision)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("users-api", "2.0.0", "staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}
	if got[AttrServiceName] != "users-api" {
		t.Errorf("expected service.name users-api, got %q", got[AttrServiceName])
	}
	if got["service.version"] != "2.0.0" {
		t.Errorf("expected service.version 2.0.0, got %q", got["service.version"])
	}
	if got["deployment.environment"] != "staging" {
		t.Errorf("expected deployment.environment staging, got %q", got["deployment.environment"])
	}
}

func TestTracerAndMeterFallbackToGlobal(t *testing.T) {
	if Tracer(nil) == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter(nil) == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestSpanHelpers(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	ctx, span := Tracer(tp).Start(context.Background(), SpanHTTPRequest)
	SetSpanAttributes(ctx, attribute.String(AttrHTTPMethod, "GET"))
	SetSpanError(ctx, fmt.Errorf("boom"))
	SetSpanError(ctx, nil)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Status.Code != codes.Error || s.Status.Description != "boom" {
		t.Errorf("expected error status, got %+v", s.Status)
	}
	if len(s.Events) != 1 {
		t.Errorf("expected 1 error event, got %d", len(s.Events))
	}
	found := false
	for _, kv := range s.Attributes {
		if kv.Key == AttrHTTPMethod && kv.Value.AsString() == "GET" {
			found = true
		}
	}
	if !found {
		t.Error("expected http.request.method attribute")
	}
}

func TestSpanHelpersNoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanError(ctx, fmt.Errorf("no span error"))
	SetSpanAttributes(ctx, attribute.String("k", "v"))
}

func TestClientMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewClientMetrics(Meter(mp))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RequestStarted(ctx, "users")
	metrics.RequestFinished(ctx, "users", "GET", 200, "ok", 20*time.Millisecond)
	metrics.RequestStarted(ctx, "users")
	metrics.RequestFinished(ctx, "users", "POST", 0, "connection", 5*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	byName := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	sum, ok := byName[MetricClientRequests].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected int64 sum for %s", MetricClientRequests)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("expected 2 requests, got %d", total)
	}

	hist, ok := byName[MetricClientDuration].Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected float64 histogram for %s", MetricClientDuration)
	}
	if len(hist.DataPoints) != 2 {
		t.Errorf("expected 2 histogram series, got %d", len(hist.DataPoints))
	}

	active, ok := byName[MetricClientActive].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected int64 sum for %s", MetricClientActive)
	}
	for _, dp := range active.DataPoints {
		if dp.Value != 0 {
			t.Errorf("expected no in-flight requests, got %d", dp.Value)
		}
	}
}

func TestClientMetricsNil(t *testing.T) {
	var m *ClientMetrics
	m.RequestStarted(context.Background(), "c")
	m.RequestFinished(context.Background(), "c", "GET", 200, "ok", time.Millisecond)
}

func TestInitTracer(t *testing.T) {
	for _, insecure := range []bool{true, false} {
		cfg := DefaultTracerConfig("test-service")
		cfg.Insecure = insecure
		cfg.SampleRate = 0.5

		tp, err := InitTracer(context.Background(), &cfg)
		if err != nil {
			t.Fatalf("InitTracer failed: %v", err)
		}
		_ = tp.Shutdown(shutdownCtx(t))
	}
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	cfg.Interval = time.Hour

	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	_ = mp.Shutdown(shutdownCtx(t))
}
