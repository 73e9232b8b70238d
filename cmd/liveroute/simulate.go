package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vango-dev/liveroute/internal/errors"
	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/protocol"
	"github.com/vango-dev/liveroute/pkg/render"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

func simulateCmd(configPath *string) *cobra.Command {
	var showHTML bool

	cmd := &cobra.Command{
		Use:   "simulate <step>...",
		Short: "Walk the configured routes through a list of locations",
		Long: `Render the configured routes at each step and print every route's
state, its view handle and the patches the step produced.

A step is a location ("/b?tab=1") or a scroll position ("scroll=250").

Examples:
  liveroute simulate /a /b /c /d /a
  liveroute simulate /a scroll=300 /b /a --html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			routes, err := cfg.BuildRoutes(logger)
			if err != nil {
				return err
			}

			sim := newSimulation(cfg.InitialPath, cfg.CacheLimit, routes, logger)
			return sim.run(cmd.Context(), cmd.OutOrStdout(), args, showHTML)
		},
	}

	cmd.Flags().BoolVar(&showHTML, "html", false, "Print the rendered HTML after each step")

	return cmd
}

type simulation struct {
	host    *liveroute.Host
	surface *liveroute.PatchSurface

	mu      sync.Mutex
	patches []protocol.Patch
}

func newSimulation(initial string, cacheLimit int, routes []liveroute.Route, logger *slog.Logger) *simulation {
	s := &simulation{}
	s.surface = liveroute.NewPatchSurface(s.enqueue)
	s.host = liveroute.NewHost(history.NewMemory(initial),
		liveroute.WithHostSurface(s.surface),
		liveroute.WithHostMatcher(pathmatch.New(pathmatch.WithCacheLimit(cacheLimit))),
		liveroute.WithHostLogger(logger),
	)
	s.host.Mount(routes...)
	return s
}

func (s *simulation) run(ctx context.Context, w io.Writer, steps []string, showHTML bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	renderer := render.NewRenderer(render.RendererConfig{Pretty: true})

	for i, step := range steps {
		if v, ok := strings.CutPrefix(step, "scroll="); ok {
			top, err := strconv.Atoi(v)
			if err != nil {
				return errors.New("E104").WithDetailf("step %d: bad scroll position %q", i+1, v)
			}
			s.surface.ApplyEvent(&protocol.Event{
				Type:    protocol.EventScroll,
				Payload: &protocol.ScrollEventData{ScrollTop: top},
			})
			fmt.Fprintf(w, "── scroll %d\n", top)
			continue
		}

		var tree *vdom.VNode
		var err error
		if i == 0 && step == s.host.History().Location().Path() {
			tree, err = s.host.Render(ctx)
		} else {
			tree, err = s.host.Navigate(ctx, step)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "── %s\n", step)
		for _, c := range s.host.Controllers() {
			handle := string(c.Handle())
			if handle == "" {
				handle = "-"
			}
			fmt.Fprintf(w, "  %-16s %-10s %s\n", c.Route().DisplayName(), c.State(), handle)
		}
		for _, p := range s.drain() {
			fmt.Fprintf(w, "  patch %s\n", p)
		}
		if showHTML {
			html, err := renderer.RenderToString(tree)
			if err != nil {
				return err
			}
			fmt.Fprint(w, html)
		}
	}
	return nil
}

func (s *simulation) enqueue(p protocol.Patch) {
	s.mu.Lock()
	s.patches = append(s.patches, p)
	s.mu.Unlock()
}

func (s *simulation) drain() []protocol.Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.patches
	s.patches = nil
	return out
}
