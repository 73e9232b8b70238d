package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/liveroute/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	return html
}

func TestRenderToString(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"nil", nil, ""},
		{"text is escaped", vdom.Text(`<b>"x"</b>`), "&lt;b&gt;&quot;x&quot;&lt;/b&gt;"},
		{"raw is not escaped", vdom.Raw("<b>x</b>"), "<b>x</b>"},
		{
			"attributes sorted",
			vdom.Div(vdom.ID("m"), vdom.Class("a b"), vdom.H1("hi")),
			`<div class="a b" id="m"><h1>hi</h1></div>`,
		},
		{
			"boolean attribute",
			vdom.Div(vdom.Hidden()),
			`<div hidden></div>`,
		},
		{"void element", vdom.Br(), "<br>"},
		{
			"fragment and component",
			vdom.Fragment(vdom.Text("a"), vdom.Comp(vdom.Func(func() *vdom.VNode { return vdom.Span("b") }))),
			"a<span>b</span>",
		},
		{
			"key is not rendered",
			vdom.Li(vdom.Key("k1"), "x"),
			"<li>x</li>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, tt.node); got != tt.want {
				t.Errorf("RenderToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderHandleAndHiddenStyle(t *testing.T) {
	node := vdom.Section(vdom.H1("live"))
	node.HID = "lr-0"
	node.SetStyleProperty("display", "none")

	got := renderString(t, node)
	want := `<section style="display: none" data-hid="lr-0"><h1>live</h1></section>`
	if got != want {
		t.Errorf("RenderToString() = %q, want %q", got, want)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	got := renderString(t, vdom.Div(vdom.Data("x", "a\"b\nc")))
	if got != `<div data-x="a&quot;b&#10;c"></div>` {
		t.Errorf("RenderToString() = %q", got)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer(RendererConfig{}).RenderToString(&vdom.VNode{Kind: vdom.VKind(42)})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRenderPretty(t *testing.T) {
	html, err := NewRenderer(RendererConfig{Pretty: true}).RenderToString(vdom.Div(vdom.P("x")))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(html, "<div>\n  <p>") || !strings.HasSuffix(html, "</div>\n") {
		t.Errorf("pretty output = %q", html)
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Title: "a & b",
		Body:  vdom.Main("content"),
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<!DOCTYPE html>", "<title>a &amp; b</title>", "<main>content</main>", "</html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPageScript(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Title:  "t",
		Body:   vdom.Main("x"),
		Script: "var a = 1 < 2;",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<main>x</main><script>var a = 1 < 2;</script></body>") {
		t.Errorf("script not inlined raw:\n%s", buf.String())
	}
}
