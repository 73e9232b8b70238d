// Package render converts view trees into HTML.
//
// Live routes stay in the document while hidden, so the rendered HTML carries
// every mounted view; hidden ones have "display: none" in their style and a
// data-hid attribute naming the handle the client patches against.
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// RenderPage wraps a body in a minimal HTML5 document for the demo server.
package render
