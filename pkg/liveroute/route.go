package liveroute

import (
	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

// Hook is called on hide and reappear transitions. match is the match that
// triggered the transition: the live match for OnHide, the primary match
// for OnReappear.
type Hook func(loc history.Location, match *pathmatch.Match, h history.History, livePath []string, alwaysLive bool)

// Predicate decides whether a live-only match unmounts the view instead of
// hiding it. It receives the live match.
type Predicate func(loc history.Location, match *pathmatch.Match, h history.History, livePath []string, alwaysLive bool) bool

// Route describes one live route. A Route is treated as immutable between
// evaluations; use Controller.Update to replace it.
type Route struct {
	// Name identifies the route in logs and metrics. Defaults to Path.
	Name string

	// Path is the primary pattern. An empty Path inherits the match of the
	// surrounding router.
	Path      string
	Exact     bool
	Strict    bool
	Sensitive bool

	// LivePath lists the patterns, in order, that keep the view alive
	// while the primary path does not match.
	LivePath []string

	// AlwaysLive keeps the view alive on every path once it has rendered.
	AlwaysLive bool

	ForceUnmount Predicate
	OnHide       Hook
	OnReappear   Hook

	// Renderables, in priority order.
	Component    func(Props) vdom.Component
	Render       func(Props) *vdom.VNode
	ChildrenFunc func(Props) *vdom.VNode
	Children     []*vdom.VNode

	// Location, when set, overrides the router's location.
	Location *history.Location
}

// DisplayName returns Name, falling back to Path and then "(pathless)".
func (r Route) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Path != "":
		return r.Path
	default:
		return "(pathless)"
	}
}

// IsLive reports whether the route can ever be hidden.
func (r Route) IsLive() bool {
	return len(r.LivePath) > 0 || r.AlwaysLive
}

// livePatterns returns the live paths with the catch-all appended for
// AlwaysLive. The route's own slice is never modified.
func (r Route) livePatterns() []string {
	if !r.AlwaysLive {
		return r.LivePath
	}
	patterns := make([]string, 0, len(r.LivePath)+1)
	patterns = append(patterns, r.LivePath...)
	return append(patterns, "*")
}

func (r Route) matchOptions() pathmatch.Options {
	return pathmatch.Options{
		Path:      r.Path,
		Exact:     r.Exact,
		Strict:    r.Strict,
		Sensitive: r.Sensitive,
	}
}
