// Package pathmatch matches URL pathnames against route path patterns.
//
// Patterns use the familiar path-to-regexp grammar:
//
//	/users/:id           named parameter, one segment
//	/users/:id?          optional parameter
//	/files/:path*        zero or more segments
//	/files/:path+        one or more segments
//	/posts/:id(\d+)      parameter with a custom pattern
//	/archive/(\d{4})     unnamed group, keyed "0", "1", ...
//	*                    matches anything (keyed "0")
//
// Matching honors three flags. Exact requires the pattern to consume the
// whole pathname; otherwise a match must end on a "/" boundary. Strict makes
// a trailing slash significant. Sensitive disables case folding.
//
// Compiled patterns are memoized in a bounded Cache bucketed by option
// triple. Once the cache is full, new patterns are still compiled but no
// longer stored, so dynamically generated patterns cannot grow memory
// without bound.
package pathmatch
