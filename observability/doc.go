// Package observability bootstraps OpenTelemetry tracing and metrics for
// fetchkit and provides the instruments the HTTP transport records into.
//
// # Tracing
//
//	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{
//	    ServiceName: "users-api",
//	    Endpoint:    "localhost:4318",
//	    Insecure:    true,
//	    SampleRate:  1.0,
//	})
//	defer tp.Shutdown(ctx)
//
// # Metrics
//
//	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{ServiceName: "users-api"})
//	metrics, err := observability.NewClientMetrics(mp.Meter("fetchkit"))
package observability
