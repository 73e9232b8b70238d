// Package vdom provides the view tree live routes render into.
//
// VNode is the building block for elements, text, fragments, components and
// raw HTML. Elements are created with variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// The hosting router resolves component nodes, assigns each routed view a
// stable handle (HID) and toggles the view's display through the style
// property helpers.
package vdom
