// Package vtest provides testing helpers for live routes.
//
// # Quick Start
//
//	func TestListStaysAlive(t *testing.T) {
//	    host := vtest.NewHost("/a").
//	        WithRoutes(liveroute.Route{Path: "/a", LivePath: []string{"/b"}, Render: list}).
//	        Build()
//	    vtest.ExpectVisible(t, vtest.Visit(t, host, "/a"), "Items")
//	    vtest.ExpectHidden(t, vtest.Visit(t, host, "/b"), "Items")
//	}
//
// # Render Assertions
//
// ExpectContains and ExpectNotContains match on the rendered HTML.
// ExpectHidden and ExpectVisible check whether the element holding a text
// carries display: none.
package vtest
