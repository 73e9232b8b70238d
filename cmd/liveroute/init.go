package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/liveroute/internal/config"
	"github.com/vango-dev/liveroute/internal/errors"
)

func initCmd(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example liveroute.json",
		Long: `Write an example configuration with the A/B/C/D demo routes:

  live-on-b     mounted on /a, hidden on /b
  live-on-bcd   mounted on /a, hidden on /b and /c, unmounted on /d
  always-live   mounted on /a, hidden everywhere else

Examples:
  liveroute init
  liveroute init --config demo.json --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(*configPath); err == nil && !force {
				return errors.New("E103").
					WithDetailf("%s already exists", *configPath).
					WithSuggestion("Use --force to overwrite it")
			}
			if err := config.Example().SaveTo(*configPath); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", *configPath)
			info(cmd.OutOrStdout(), "Try: liveroute simulate --config %s /a /b /c /d /a", *configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
