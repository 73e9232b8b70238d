package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Serve the configured routes to browsers.

Every browser gets its own session. Following links between the
routes hides and restores live views without reloading the page,
and metrics are exposed at /metrics.

Examples:
  liveroute serve
  liveroute serve --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)
			slog.SetDefault(logger)

			// Fail on bad predicates before the first request.
			if _, err := cfg.BuildRoutes(logger); err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			srv := server.New(&server.ServerConfig{
				Address:     addr,
				Title:       cfg.Server.Title,
				InitialPath: cfg.InitialPath,
				Matcher:     pathmatch.New(pathmatch.WithCacheLimit(cfg.CacheLimit)),
				Routes: func() []liveroute.Route {
					routes, _ := cfg.BuildRoutes(logger)
					return routes
				},
			})

			success(cmd.OutOrStdout(), "Serving %d routes on %s", len(cfg.Routes), addr)
			return srv.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}
