package liveroute

import (
	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
)

// RouterContext is what a hosting router hands each live route on every
// evaluation.
type RouterContext struct {
	History       history.History
	Location      history.Location
	Match         *pathmatch.Match
	StaticContext any

	// Scroll is the surface scroll position when the evaluation pass
	// started. Routes sharing one surface save this value when they hide,
	// so a sibling restoring its own scroll earlier in the pass does not
	// leak into their backup. Nil reads the surface directly.
	Scroll *ScrollPosition
}

// Props is passed to a route's renderable.
type Props struct {
	History       history.History
	Location      history.Location
	StaticContext any

	// Match is the primary match. While hidden it is the last primary
	// match seen, not the current live match.
	Match *pathmatch.Match

	// LiveMatch is the live path match while hidden, nil otherwise.
	LiveMatch *pathmatch.Match

	// Hidden reports whether the view renders frozen behind display: none.
	Hidden bool
}

// snapshot is the routing context captured at the last visible render.
type snapshot struct {
	history       history.History
	location      history.Location
	staticContext any
	match         *pathmatch.Match
}
