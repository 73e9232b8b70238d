// Package middleware provides HTTP middleware for the live route server.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// Both are plain func(http.Handler) http.Handler values and plug into chi:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// # OpenTelemetry Middleware
//
// Every request gets a server span named after its chi route pattern
// ("GET /*", "GET /_live"). The tracer comes from the global provider, so
// configure it in main() before starting the server:
//
//	otel.SetTracerProvider(tp)
//
// Live route evaluations started while handling the request become
// children of the request span.
//
// # Prometheus Metrics
//
// The metrics middleware records request counts and durations, labelled by
// route pattern rather than raw path to keep cardinality bounded:
//
//	liveroute_http_requests_total{route,method,status}
//	liveroute_http_request_duration_seconds{route,method}
package middleware
