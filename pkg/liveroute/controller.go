package liveroute

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/liveroute/internal/errors"
	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

const tracerName = "github.com/vango-dev/liveroute"

// Controller wraps one Route and decides, on every evaluation, whether its
// view renders, hides or unmounts.
//
// A Controller is not safe for concurrent use. Its evaluations must be
// sequential, which the Host guarantees.
type Controller struct {
	route    Route
	matcher  *pathmatch.Matcher
	surface  Surface
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer

	state       State
	handle      Handle
	scroll      *ScrollPosition
	prevDisplay *string
	matched     *snapshot

	evaluated  bool
	controlled bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithMatcher sets the path matcher. Defaults to pathmatch.Default.
func WithMatcher(m *pathmatch.Matcher) Option {
	return func(c *Controller) {
		if m != nil {
			c.matcher = m
		}
	}
}

// WithSurface sets the surface side effects act on.
func WithSurface(s Surface) Option {
	return func(c *Controller) {
		if s != nil {
			c.surface = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver sets the observer notified of transitions and hooks.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithTracer sets the tracer used for evaluation spans. Defaults to the
// global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a Controller for route.
func New(route Route, opts ...Option) *Controller {
	c := &Controller{
		route:    route,
		matcher:  pathmatch.Default,
		observer: nopObserver{},
		state:    StateOnInit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.surface == nil {
		c.surface = NewMemorySurface()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "liveroute", "route", c.route.DisplayName())
	c.warnRenderables()
	return c
}

// Route returns the route descriptor.
func (c *Controller) Route() Route { return c.route }

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Handle returns the cached view handle, empty when none is cached.
func (c *Controller) Handle() Handle { return c.handle }

// ScrollBackup returns the saved scroll position, nil unless hidden.
func (c *Controller) ScrollBackup() *ScrollPosition {
	if c.scroll == nil {
		return nil
	}
	pos := *c.scroll
	return &pos
}

// Update replaces the route descriptor. The new descriptor takes effect on
// the next evaluation.
func (c *Controller) Update(route Route) {
	c.route = route
	c.warnRenderables()
}

// Evaluate runs one evaluation against rc and returns the view to render,
// nil when nothing should render.
func (c *Controller) Evaluate(ctx context.Context, rc *RouterContext) (*vdom.VNode, error) {
	if rc == nil {
		return nil, errors.New("E101").
			WithDetailf("route %q was evaluated without a router context", c.route.DisplayName()).
			WithSuggestion("Mount the route on a liveroute.Host or pass a RouterContext")
	}

	start := time.Now()
	name := c.route.DisplayName()
	_, span := c.tracer.Start(ctx, "liveroute.evaluate",
		trace.WithAttributes(
			attribute.String("liveroute.route", name),
			attribute.String("liveroute.state.from", c.state.String()),
		),
	)
	defer span.End()
	defer func() { c.observer.ObserveEvaluation(name, time.Since(start)) }()

	c.checkControlled()

	loc := rc.Location
	if c.route.Location != nil {
		loc = *c.route.Location
	}
	span.SetAttributes(attribute.String("liveroute.pathname", loc.Pathname))

	in, err := c.match(loc, rc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	prev := c.state
	step := Transition(Machine{State: c.state, HasHandle: c.handle != ""}, in)
	c.run(step.Effects, loc, rc, in)
	c.state = step.Next.State

	if step.Decision == RenderFresh {
		c.matched = &snapshot{
			history:       rc.History,
			location:      loc,
			staticContext: rc.StaticContext,
			match:         in.PathMatch,
		}
	}

	span.SetAttributes(
		attribute.String("liveroute.state.to", c.state.String()),
		attribute.String("liveroute.decision", step.Decision.String()),
	)
	if prev != c.state {
		c.logger.Debug("transition",
			"from", prev.String(),
			"to", c.state.String(),
			"pathname", loc.Pathname,
			"effects", len(step.Effects),
		)
		c.observer.ObserveTransition(name, prev, c.state)
	}

	switch step.Decision {
	case RenderFresh:
		return c.render(Props{
			History:       rc.History,
			Location:      loc,
			StaticContext: rc.StaticContext,
			Match:         in.PathMatch,
		}), nil
	case RenderFrozen:
		return c.render(c.frozenProps(in.LiveMatch)), nil
	default:
		return nil, nil
	}
}

// match runs the primary match and, only when it fails, the live paths.
func (c *Controller) match(loc history.Location, rc *RouterContext) (Input, error) {
	var in Input
	opts := c.route.matchOptions()

	pm, err := c.matcher.Match(loc.Pathname, opts, rc.Match)
	if err != nil {
		return in, c.patternError(opts.Path, err)
	}
	in.PathMatch = pm
	if pm != nil || !c.route.IsLive() {
		return in, nil
	}

	lm, err := c.matcher.MatchFirst(loc.Pathname, c.route.livePatterns(), opts)
	if err != nil {
		return in, c.patternError("", err)
	}
	in.LiveMatch = lm

	if lm != nil && c.route.ForceUnmount != nil {
		in.ForceUnmount = c.route.ForceUnmount(loc, lm, rc.History, c.route.LivePath, c.route.AlwaysLive)
	}
	return in, nil
}

func (c *Controller) patternError(pattern string, err error) error {
	le := errors.FromError(err, "E102")
	if pattern != "" {
		le = le.WithDetailf("route %q: pattern %q: %v", c.route.DisplayName(), pattern, err)
	} else {
		le = le.WithDetailf("route %q: live path: %v", c.route.DisplayName(), err)
	}
	return le
}

// run executes effects in order.
func (c *Controller) run(effects []Effect, loc history.Location, rc *RouterContext, in Input) {
	h := rc.History
	for _, effect := range effects {
		switch effect {
		case EffectShowView:
			if c.handle != "" && c.prevDisplay != nil {
				c.surface.SetDisplay(c.handle, *c.prevDisplay)
				c.prevDisplay = nil
			}

		case EffectRestoreScroll:
			if c.handle != "" && c.scroll != nil {
				c.surface.ScrollTo(*c.scroll)
			}

		case EffectClearScroll:
			c.scroll = nil

		case EffectFireReappear:
			if c.route.OnReappear != nil {
				c.route.OnReappear(loc, in.PathMatch, h, c.route.LivePath, c.route.AlwaysLive)
				c.observer.ObserveHook(c.route.DisplayName(), "reappear")
			}

		case EffectFireHide:
			if c.route.OnHide != nil {
				c.route.OnHide(loc, in.LiveMatch, h, c.route.LivePath, c.route.AlwaysLive)
				c.observer.ObserveHook(c.route.DisplayName(), "hide")
			}

		case EffectSaveScroll:
			if c.handle != "" && c.scroll == nil {
				pos := c.surface.ScrollPosition()
				if rc.Scroll != nil {
					pos = *rc.Scroll
				}
				c.scroll = &pos
			}

		case EffectHideView:
			if c.handle == "" {
				continue
			}
			if display := c.surface.Display(c.handle); display != "none" {
				c.prevDisplay = &display
				c.surface.SetDisplay(c.handle, "none")
			}

		case EffectReleaseView:
			c.release()
		}
	}
}

// release drops the handle and display backup and clears the handle's
// display on the surface, so a later mount under the same handle starts
// from its own display.
func (c *Controller) release() {
	if c.handle != "" && (c.prevDisplay != nil || c.surface.Display(c.handle) != "") {
		c.surface.SetDisplay(c.handle, "")
	}
	c.handle = ""
	c.prevDisplay = nil
}

func (c *Controller) frozenProps(live *pathmatch.Match) Props {
	p := Props{LiveMatch: live, Hidden: true}
	if c.matched != nil {
		p.History = c.matched.history
		p.Location = c.matched.location
		p.StaticContext = c.matched.staticContext
		p.Match = c.matched.match
	}
	return p
}

// render produces the view: Component, then Render, then ChildrenFunc,
// then Children.
func (c *Controller) render(p Props) *vdom.VNode {
	r := &c.route
	switch {
	case r.Component != nil:
		comp := r.Component(p)
		if comp == nil {
			return nil
		}
		return vdom.Comp(comp)
	case r.Render != nil:
		return r.Render(p)
	case r.ChildrenFunc != nil:
		node := r.ChildrenFunc(p)
		if node == nil {
			c.warn("W206")
		}
		return node
	case len(r.Children) == 1:
		return r.Children[0]
	case len(r.Children) > 1:
		return vdom.Fragment(r.Children)
	default:
		return nil
	}
}

// Commit records the root handle of the view rendered by the last
// evaluation. An empty handle keeps the previous one. Commits are ignored
// while the route is unmatched.
func (c *Controller) Commit(h Handle) {
	if h == "" || c.state == StateUnmatched || c.state == StateOnInit {
		return
	}
	c.handle = h
}

// Unmount tears the controller down: backups, handle and snapshot are
// dropped.
func (c *Controller) Unmount() {
	prev := c.state
	c.scroll = nil
	c.release()
	c.matched = nil
	c.state = StateUnmatched
	if prev != StateUnmatched {
		c.observer.ObserveTransition(c.route.DisplayName(), prev, StateUnmatched)
	}
}

func (c *Controller) checkControlled() {
	controlled := c.route.Location != nil
	if c.evaluated && controlled != c.controlled {
		if controlled {
			c.warn("W204")
		} else {
			c.warn("W205")
		}
	}
	c.evaluated = true
	c.controlled = controlled
}

func (c *Controller) warnRenderables() {
	r := &c.route
	hasChildren := r.ChildrenFunc != nil || len(r.Children) > 0
	if r.Component != nil && r.Render != nil {
		c.warn("W201")
	}
	if r.Component != nil && hasChildren {
		c.warn("W202")
	}
	if r.Render != nil && hasChildren {
		c.warn("W203")
	}
}

// warn logs a usage warning. Warnings never change behavior.
func (c *Controller) warn(code string) {
	w := errors.New(code)
	c.logger.Warn(w.Message, "code", w.Code, "detail", w.Detail)
}
