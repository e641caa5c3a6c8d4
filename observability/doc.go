// Package observability wires OpenTelemetry tracing and metrics.
//
// Init installs OTLP/HTTP exporters as the global providers when enabled;
// otherwise the otel no-op providers stay in place and every instrument is
// free to call.
//
//	providers, err := observability.Init(ctx, cfg, observability.ServiceInfo{Name: "labauth"}, log)
//	defer providers.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("labauth"))
//	metrics.RecordAuth(ctx, "login", "ok", time.Since(start))
package observability
