package observe

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

// gather returns the metric families of reg keyed by name.
func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

// value sums the counter or gauge values of the series whose labels
// include all of want.
func value(f *dto.MetricFamily, want map[string]string) float64 {
	if f == nil {
		return 0
	}
	var sum float64
	for _, m := range f.GetMetric() {
		labels := map[string]string{}
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		ok := true
		for k, v := range want {
			if labels[k] != v {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		switch {
		case m.GetCounter() != nil:
			sum += m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			sum += m.GetGauge().GetValue()
		}
	}
	return sum
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"), WithConstLabels(prometheus.Labels{"app": "demo"}))

	m.ObserveTransition("r", liveroute.StateOnInit, liveroute.StateMatched)
	m.ObserveTransition("r", liveroute.StateMatched, liveroute.StateHidden)
	m.ObserveHook("r", "hide")
	m.ObserveEvaluation("r", 2*time.Millisecond)

	fams := gather(t, reg)
	if got := value(fams["test_transitions_total"], map[string]string{"route": "r", "to": "HIDDEN"}); got != 1 {
		t.Errorf("transitions to HIDDEN = %v, want 1", got)
	}
	if got := value(fams["test_hidden_views"], map[string]string{"route": "r", "app": "demo"}); got != 1 {
		t.Errorf("hidden_views = %v, want 1", got)
	}
	if got := value(fams["test_hooks_total"], map[string]string{"hook": "hide"}); got != 1 {
		t.Errorf("hooks_total = %v, want 1", got)
	}
	h := fams["test_evaluation_duration_seconds"]
	if h == nil || h.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
		t.Errorf("evaluation_duration_seconds = %v", h)
	}

	m.ObserveTransition("r", liveroute.StateHidden, liveroute.StateMatched)
	if got := value(gather(t, reg)["test_hidden_views"], map[string]string{"route": "r"}); got != 0 {
		t.Errorf("hidden_views after reappear = %v, want 0", got)
	}
}

func TestMetricsWithHost(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithSubsystem("host"))

	h := liveroute.NewHost(history.NewMemory("/a"),
		liveroute.WithHostObserver(m),
		liveroute.WithHostMatcher(pathmatch.New()),
	)
	h.Mount(liveroute.Route{
		Name:       "list",
		Path:       "/a",
		LivePath:   []string{"/b"},
		OnHide:     func(history.Location, *pathmatch.Match, history.History, []string, bool) {},
		OnReappear: func(history.Location, *pathmatch.Match, history.History, []string, bool) {},
		Render:     func(liveroute.Props) *vdom.VNode { return vdom.Div("list") },
	})

	ctx := context.Background()
	for _, path := range []string{"", "/b", "/b", "/a"} {
		var err error
		if path == "" {
			_, err = h.Render(ctx)
		} else {
			_, err = h.Navigate(ctx, path)
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	fams := gather(t, reg)
	if got := value(fams["liveroute_host_hooks_total"], map[string]string{"route": "list"}); got != 2 {
		t.Errorf("hooks_total = %v, want 2", got)
	}
	if got := value(fams["liveroute_host_transitions_total"], map[string]string{"route": "list"}); got != 3 {
		t.Errorf("transitions_total = %v, want 3", got)
	}
	if got := value(fams["liveroute_host_hidden_views"], nil); got != 0 {
		t.Errorf("hidden_views = %v, want 0", got)
	}
}
