package liveroute

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

// Host is a hosting router for live routes. It owns a history and a
// surface, evaluates every mounted route on each render, and reports view
// handles back to the controllers.
//
// Host methods are safe for concurrent use; evaluations are serialized.
type Host struct {
	mu            sync.Mutex
	history       history.History
	surface       Surface
	matcher       *pathmatch.Matcher
	logger        *slog.Logger
	observer      Observer
	tracer        trace.Tracer
	staticContext any
	controllers   []*Controller
	onRender      func(*vdom.VNode, error)
	unlisten      func()

	rendering atomic.Bool
	popped    atomic.Bool
}

// maxRenderPasses bounds how often one Render re-evaluates after history
// pops made while it was running.
const maxRenderPasses = 8

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostSurface sets the surface shared by all routes of the host.
func WithHostSurface(s Surface) HostOption {
	return func(h *Host) {
		if s != nil {
			h.surface = s
		}
	}
}

// WithHostMatcher sets the matcher shared by all routes of the host.
func WithHostMatcher(m *pathmatch.Matcher) HostOption {
	return func(h *Host) {
		if m != nil {
			h.matcher = m
		}
	}
}

// WithHostLogger sets the logger passed to every controller.
func WithHostLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithHostObserver sets the observer passed to every controller.
func WithHostObserver(o Observer) HostOption {
	return func(h *Host) { h.observer = o }
}

// WithHostTracer sets the tracer passed to every controller.
func WithHostTracer(t trace.Tracer) HostOption {
	return func(h *Host) { h.tracer = t }
}

// WithStaticContext sets the static context handed to every route.
func WithStaticContext(v any) HostOption {
	return func(h *Host) { h.staticContext = v }
}

// WithRenderListener sets a function called with the result of every
// render the host starts on its own after a history pop.
func WithRenderListener(fn func(*vdom.VNode, error)) HostOption {
	return func(h *Host) { h.onRender = fn }
}

// NewHost creates a Host over hist. The host listens to hist and renders
// again after Go, Back and Forward.
func NewHost(hist history.History, opts ...HostOption) *Host {
	h := &Host{
		history: hist,
		matcher: pathmatch.Default,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.surface == nil {
		h.surface = NewMemorySurface()
	}
	h.unlisten = hist.Listen(h.historyChanged)
	return h
}

// historyChanged renders after a pop. Push and Replace come through
// Navigate or are followed by an explicit Render.
func (h *Host) historyChanged(_ history.Location, action history.Action) {
	if action != history.ActionPop {
		return
	}
	if h.rendering.Load() {
		h.popped.Store(true)
		return
	}
	tree, err := h.Render(context.Background())
	if err != nil {
		h.logger.Error("render after history pop failed", "error", err)
	}
	if h.onRender != nil {
		h.onRender(tree, err)
	}
}

// Mount adds routes to the host, in evaluation order.
func (h *Host) Mount(routes ...Route) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range routes {
		h.controllers = append(h.controllers, New(r,
			WithMatcher(h.matcher),
			WithSurface(h.surface),
			WithLogger(h.logger),
			WithObserver(h.observer),
			WithTracer(h.tracer),
		))
	}
}

// Controllers returns the mounted controllers.
func (h *Host) Controllers() []*Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Controller(nil), h.controllers...)
}

// Surface returns the host surface.
func (h *Host) Surface() Surface { return h.surface }

// History returns the host history.
func (h *Host) History() history.History { return h.history }

// Render evaluates every route against the current location and returns
// the combined view tree. Routes that render nothing are left out. A
// history pop made while rendering, for instance by a hook, triggers
// another pass.
func (h *Host) Render(ctx context.Context) (*vdom.VNode, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rendering.Store(true)
	defer h.rendering.Store(false)

	for pass := 1; ; pass++ {
		h.popped.Store(false)
		tree, err := h.evaluate(ctx)
		if err != nil || !h.popped.Load() || pass == maxRenderPasses {
			return tree, err
		}
	}
}

func (h *Host) evaluate(ctx context.Context) (*vdom.VNode, error) {
	loc := h.history.Location()
	scroll := h.surface.ScrollPosition()
	rc := &RouterContext{
		History:       h.history,
		Location:      loc,
		Match:         pathmatch.Root(loc.Pathname),
		StaticContext: h.staticContext,
		Scroll:        &scroll,
	}

	root := vdom.Fragment()
	for i, c := range h.controllers {
		node, err := c.Evaluate(ctx, rc)
		if err != nil {
			return nil, err
		}
		node = vdom.Resolve(node)
		if node == nil {
			continue
		}
		h.commit(c, i, node)
		root.Children = append(root.Children, node)
	}
	return root, nil
}

// commit assigns the view's root element a handle, reports it to the
// controller and stamps the surface display onto the element.
func (h *Host) commit(c *Controller, index int, node *vdom.VNode) {
	el := vdom.FirstElement(node)
	if el == nil {
		return
	}
	if el.HID == "" {
		if c.Handle() != "" {
			el.HID = string(c.Handle())
		} else {
			el.HID = fmt.Sprintf("lr-%d", index)
		}
	}
	hid := Handle(el.HID)
	c.Commit(hid)

	if display := h.surface.Display(hid); display != "" {
		el.SetStyleProperty("display", display)
	} else if own := el.StyleProperty("display"); own != "" && c.State() == StateMatched {
		h.surface.SetDisplay(hid, own)
	}
}

// Navigate pushes path onto the history and renders.
func (h *Host) Navigate(ctx context.Context, path string) (*vdom.VNode, error) {
	h.history.Push(path, nil)
	return h.Render(ctx)
}

// Unmount stops listening to the history and tears down every controller.
func (h *Host) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unlisten != nil {
		h.unlisten()
		h.unlisten = nil
	}
	for _, c := range h.controllers {
		c.Unmount()
	}
}
