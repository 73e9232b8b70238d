package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// recorder collects finished spans from recordingProvider.
type recorder struct {
	mu    sync.Mutex
	spans []*recordingSpan
}

func (r *recorder) finished() []*recordingSpan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*recordingSpan(nil), r.spans...)
}

type recordingProvider struct {
	noop.TracerProvider
	rec *recorder
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return recordingTracer{Tracer: noop.NewTracerProvider().Tracer(""), rec: p.rec}
}

type recordingTracer struct {
	trace.Tracer
	rec *recorder
}

func (t recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, span := t.Tracer.Start(ctx, name, opts...)
	cfg := trace.NewSpanStartConfig(opts...)
	return ctx, &recordingSpan{Span: span, rec: t.rec, name: name, attrs: cfg.Attributes()}
}

type recordingSpan struct {
	trace.Span
	rec    *recorder
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
}

func (s *recordingSpan) SetName(name string)                    { s.name = name }
func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) SetStatus(code codes.Code, _ string)    { s.status = code }
func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.rec.mu.Lock()
	s.rec.spans = append(s.rec.spans, s)
	s.rec.mu.Unlock()
}

func (s *recordingSpan) attr(key string) attribute.Value {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func newRouter(mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "id")))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestOpenTelemetry(t *testing.T) {
	rec := &recorder{}
	h := newRouter(OpenTelemetry(
		WithTracerProvider(recordingProvider{rec: rec}),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("custom", "yes")}
		}),
	))

	if body := serve(h, "/items/7").Body.String(); body != "7" {
		t.Fatalf("body = %q, want 7", body)
	}
	serve(h, "/boom")

	spans := rec.finished()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}

	tests := []struct {
		span   *recordingSpan
		name   string
		route  string
		status int64
		code   codes.Code
	}{
		{spans[0], "GET /items/{id}", "/items/{id}", 200, codes.Unset},
		{spans[1], "GET /boom", "/boom", 500, codes.Error},
	}
	for _, tt := range tests {
		if tt.span.name != tt.name {
			t.Errorf("span name = %q, want %q", tt.span.name, tt.name)
		}
		if got := tt.span.attr("http.route").AsString(); got != tt.route {
			t.Errorf("%s: http.route = %q, want %q", tt.name, got, tt.route)
		}
		if got := tt.span.attr("http.status_code").AsInt64(); got != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.name, got, tt.status)
		}
		if tt.span.status != tt.code {
			t.Errorf("%s: span status = %v, want %v", tt.name, tt.span.status, tt.code)
		}
		if got := tt.span.attr("custom").AsString(); got != "yes" {
			t.Errorf("%s: custom attribute = %q", tt.name, got)
		}
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	rec := &recorder{}
	h := newRouter(OpenTelemetry(
		WithTracerProvider(recordingProvider{rec: rec}),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/boom" }),
	))

	serve(h, "/boom")
	if got := serve(h, "/items/1").Code; got != http.StatusOK {
		t.Fatalf("status = %d", got)
	}
	if n := len(rec.finished()); n != 1 {
		t.Errorf("spans = %d, want 1", n)
	}
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newRouter(Prometheus(WithRegistry(reg), WithNamespace("test")))

	serve(h, "/items/1")
	serve(h, "/items/2")
	serve(h, "/boom")
	serve(h, "/nowhere")

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	counts := map[string]float64{}
	var histograms int
	for _, f := range families {
		switch f.GetName() {
		case "test_http_requests_total":
			for _, m := range f.GetMetric() {
				var route, status string
				for _, lp := range m.GetLabel() {
					switch lp.GetName() {
					case "route":
						route = lp.GetValue()
					case "status":
						status = lp.GetValue()
					}
				}
				counts[route+" "+status] = m.GetCounter().GetValue()
			}
		case "test_http_request_duration_seconds":
			histograms = len(f.GetMetric())
		}
	}

	want := map[string]float64{
		"/items/{id} 200": 2,
		"/boom 500":       1,
		"unmatched 404":   1,
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("requests_total[%s] = %v, want %v (all: %v)", k, counts[k], v, counts)
		}
	}
	if histograms != 3 {
		t.Errorf("duration series = %d, want 3", histograms)
	}
}
