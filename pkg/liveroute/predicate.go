package liveroute

import (
	"strings"

	exprlang "github.com/expr-lang/expr"

	"github.com/vango-dev/liveroute/internal/errors"
	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
)

// CompilePredicate compiles an expr-lang expression into a forceUnmount
// Predicate. The expression sees:
//
//	pathname, search, hash  string             current location
//	url                     string             matched portion of the pathname
//	params                  map[string]string  live match parameters
//	livePath                []string           the route's live paths
//	alwaysLive              bool
//
// For example: pathname startsWith "/b/edit" or params.id == "new".
// An evaluation that fails or yields a non-bool value counts as false.
func CompilePredicate(expression string) (Predicate, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, errors.New("E105").WithDetail("expression must not be empty")
	}

	program, err := exprlang.Compile(expression,
		exprlang.Env(predicateEnv(history.Location{}, nil, nil, false)),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, errors.New("E105").
			WithDetailf("%q: %v", expression, err).
			Wrap(err)
	}

	return func(loc history.Location, match *pathmatch.Match, _ history.History, livePath []string, alwaysLive bool) bool {
		out, err := exprlang.Run(program, predicateEnv(loc, match, livePath, alwaysLive))
		if err != nil {
			return false
		}
		b, _ := out.(bool)
		return b
	}, nil
}

func predicateEnv(loc history.Location, match *pathmatch.Match, livePath []string, alwaysLive bool) map[string]any {
	params := map[string]string{}
	url := ""
	if match != nil {
		url = match.URL
		for k, v := range match.Params {
			params[k] = v
		}
	}
	if livePath == nil {
		livePath = []string{}
	}
	return map[string]any{
		"pathname":   loc.Pathname,
		"search":     loc.Search,
		"hash":       loc.Hash,
		"url":        url,
		"params":     params,
		"livePath":   livePath,
		"alwaysLive": alwaysLive,
	}
}
