// Package server serves live routes to browsers.
//
// Every browser gets a session (identified by a cookie) owning a history
// and a liveroute.Host. Page requests navigate the session to the request
// path and answer with server-rendered HTML, hidden views included. The
// /_live WebSocket then carries protocol frames: the client sends scroll
// and navigate events, the server answers with the SetStyle, RemoveStyle
// and ScrollTo patches the live routes produced.
//
//	GET /metrics   Prometheus metrics
//	GET /_live     WebSocket
//	GET /*         HTML page
//
// Usage:
//
//	srv := server.New(&server.ServerConfig{
//	    Address: ":8080",
//	    Routes:  func() []liveroute.Route { return routes },
//	})
//	srv.Run()
package server
