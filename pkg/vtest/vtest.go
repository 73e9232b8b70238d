package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/render"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

// HostBuilder allows fluent construction of test hosts.
type HostBuilder struct {
	initial string
	routes  []liveroute.Route
	opts    []liveroute.HostOption
}

// NewHost creates a host builder whose history starts at initial. The
// built host has its own pattern cache and discards logs.
//
// Example:
//
//	host := vtest.NewHost("/").WithRoutes(routes...).Build()
func NewHost(initial string) *HostBuilder {
	return &HostBuilder{
		initial: initial,
		opts: []liveroute.HostOption{
			liveroute.WithHostMatcher(pathmatch.New()),
			liveroute.WithHostLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		},
	}
}

// WithRoutes mounts routes, in order.
func (b *HostBuilder) WithRoutes(routes ...liveroute.Route) *HostBuilder {
	b.routes = append(b.routes, routes...)
	return b
}

// WithOptions adds host options.
func (b *HostBuilder) WithOptions(opts ...liveroute.HostOption) *HostBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build returns the host.
func (b *HostBuilder) Build() *liveroute.Host {
	h := liveroute.NewHost(history.NewMemory(b.initial), b.opts...)
	h.Mount(b.routes...)
	return h
}

// Visit navigates host to path and returns the rendered tree. An empty
// path renders the current location.
func Visit(t *testing.T, host *liveroute.Host, path string) *vdom.VNode {
	t.Helper()
	var (
		node *vdom.VNode
		err  error
	)
	if path == "" {
		node, err = host.Render(context.Background())
	} else {
		node, err = host.Navigate(context.Background(), path)
	}
	if err != nil {
		t.Fatalf("visit %q: %v", path, err)
	}
	return node
}

// RenderToString renders a VNode and returns the HTML string.
//
// Example:
//
//	html := vtest.RenderToString(tree)
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectHidden asserts that text is rendered inside an element carrying
// display: none.
func ExpectHidden(t *testing.T, node *vdom.VNode, text string) {
	t.Helper()
	hidden, found := hiddenText(node, text, false)
	switch {
	case !found:
		t.Errorf("expected %q to be rendered hidden, but it is not rendered", text)
	case !hidden:
		t.Errorf("expected %q to be hidden, got:\n%s", text, truncate(RenderToString(node), 500))
	}
}

// ExpectVisible asserts that text is rendered and no enclosing element
// carries display: none.
func ExpectVisible(t *testing.T, node *vdom.VNode, text string) {
	t.Helper()
	hidden, found := hiddenText(node, text, false)
	switch {
	case !found:
		t.Errorf("expected %q to be rendered, got:\n%s", text, truncate(RenderToString(node), 500))
	case hidden:
		t.Errorf("expected %q to be visible, got:\n%s", text, truncate(RenderToString(node), 500))
	}
}

// hiddenText finds the first text node containing text and reports whether
// an ancestor is hidden.
func hiddenText(node *vdom.VNode, text string, hidden bool) (isHidden, found bool) {
	node = vdom.Resolve(node)
	if node == nil {
		return false, false
	}
	if node.Kind == vdom.KindText {
		return hidden, strings.Contains(node.Text, text)
	}
	if node.Kind == vdom.KindElement && node.StyleProperty("display") == "none" {
		hidden = true
	}
	for _, child := range node.Children {
		if h, ok := hiddenText(child, text, hidden); ok {
			return h, true
		}
	}
	return false, false
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
