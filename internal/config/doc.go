// Package config loads liveroute.json, the file that declares the routes
// the liveroute CLI simulates and serves.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "cacheLimit": 10000,
//	  "logLevel": "info",
//	  "initialPath": "/a",
//	  "server": {
//	    "addr": ":8080",
//	    "title": "liveroute demo"
//	  },
//	  "routes": [
//	    {
//	      "name": "list",
//	      "path": "/a",
//	      "livePath": ["/b", "/c", "/d"],
//	      "forceUnmount": "pathname == \"/d\"",
//	      "text": "The list"
//	    },
//	    { "path": "/b", "text": "Detail" }
//	  ]
//	}
//
// livePath accepts a single string or a list. Non-string list items are
// skipped. forceUnmount is an expr-lang expression, see
// liveroute.CompilePredicate.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	routes, err := cfg.BuildRoutes(logger)
package config
