// Package liveroute keeps a routed view alive while the user visits other
// paths.
//
// A plain route mounts its view when its path matches and unmounts it when
// it does not. A live route adds a list of live paths: while one of them
// matches instead, the view stays mounted with its display suppressed, its
// scroll position is saved, and OnHide fires. When the primary path matches
// again the view is revealed, the scroll position is restored, and
// OnReappear fires.
//
// # Evaluation
//
// Every location change flows through Controller.Evaluate, which consults
// the path matcher, asks the pure Transition function for the next state,
// runs the returned effects exactly once, and renders:
//
//	ON_INIT ──match──▶ MATCHED ──live match──▶ HIDDEN
//	   │                  ▲  │                   │
//	   │                  └──┼─────match─────────┘
//	   └──no match──▶ UNMATCHED ◀──no match / forceUnmount──┘
//
// While hidden the view is rendered with frozen props: the history,
// location and static context captured the last time it rendered visibly,
// and the last primary match.
//
// # Hosting
//
// A Host plays the hosting router. It owns the history, builds an explicit
// RouterContext for every render, evaluates its controllers in order, and
// reports each view's root handle back to its controller. Display and
// scroll side effects go through a Surface, which is either an in-memory
// mirror (MemorySurface) or one that also emits protocol patches for a
// remote client (PatchSurface).
//
//	h := liveroute.NewHost(history.NewMemory("/a"))
//	h.Mount(liveroute.Route{
//	    Path:     "/a",
//	    LivePath: []string{"/b"},
//	    Render:   func(p liveroute.Props) *vdom.VNode { return vdom.Div("list") },
//	})
//	tree, err := h.Render(ctx)
package liveroute
