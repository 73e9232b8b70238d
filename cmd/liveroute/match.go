package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/liveroute/internal/errors"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
)

func matchCmd() *cobra.Command {
	var opts pathmatch.Options

	cmd := &cobra.Command{
		Use:   "match <pattern> <pathname>",
		Short: "Test a path pattern against a pathname",
		Long: `Match a pathname against a path pattern and print the match.

Patterns use named parameters (:id), optional parameters (:id?),
and repeating parameters (:path*, :path+).

Examples:
  liveroute match /users/:id /users/42
  liveroute match /a /a/b --exact`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			opts.Path = args[0]

			m, err := pathmatch.Default.Match(args[1], opts, nil)
			if err != nil {
				return errors.FromError(err, "E102").WithDetailf("pattern %q", args[0])
			}
			if m == nil {
				warn(w, "%s does not match %s", args[1], args[0])
				return nil
			}

			success(w, "%s matches %s", args[1], args[0])
			info(w, "url:   %s", m.URL)
			info(w, "exact: %t", m.IsExact)

			names := make([]string, 0, len(m.Params))
			for name := range m.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				info(w, "param %s = %q", name, m.Params[name])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "Require the whole pathname to match")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Make a trailing slash significant")
	cmd.Flags().BoolVar(&opts.Sensitive, "sensitive", false, "Match case-sensitively")

	return cmd
}
