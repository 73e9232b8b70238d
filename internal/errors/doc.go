// Package errors provides structured, coded errors and diagnostics for
// liveroute.
//
// Every failure and usage warning the library can surface has a stable code
// in the registry. Codes map to a category, a short message, a longer detail
// and a documentation link:
//   - E1xx: configuration errors. These are fatal and indicate a wiring
//     mistake (a live route evaluated outside a router, an invalid path
//     pattern, an unreadable config file).
//   - W2xx: usage warnings. These are development diagnostics that never
//     change behavior (conflicting renderables, switching between a
//     controlled and an uncontrolled location).
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(`route "/a" was evaluated with a nil RouterContext`).
//	    WithSuggestion("Mount the route through liveroute.Host")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Live route used outside a router
//	//
//	//   route "/a" was evaluated with a nil RouterContext
//	//
//	//   Hint: Mount the route through liveroute.Host
//	//
//	//   Learn more: https://github.com/vango-dev/liveroute/blob/main/docs/errors.md#E101
package errors
