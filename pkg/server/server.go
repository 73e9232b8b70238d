package server

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/liveroute/internal/errors"
	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/middleware"
	"github.com/vango-dev/liveroute/pkg/observe"
	"github.com/vango-dev/liveroute/pkg/render"
)

//go:embed client.js
var clientScript string

// Server serves live routes over HTTP and WebSocket.
type Server struct {
	config     *ServerConfig
	sessions   *SessionManager
	metrics    *observe.Metrics
	renderer   *render.Renderer
	router     chi.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig) *Server {
	config = config.withDefaults()

	s := &Server{
		config:   config,
		metrics:  observe.NewMetrics(observe.WithRegistry(config.Registry)),
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   slog.Default().With("component", "server"),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	s.sessions = NewSessionManager(config.MaxSessions, config.InitialPath, config.Routes, s.logger,
		liveroute.WithHostMatcher(config.Matcher),
		liveroute.WithHostLogger(s.logger),
		liveroute.WithHostObserver(s.metrics),
	)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(middleware.WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/metrics"
	})))
	r.Use(middleware.Prometheus(middleware.WithRegistry(config.Registry)))
	r.Handle("/metrics", promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	r.Get("/favicon.ico", http.NotFound)
	r.Get("/_live", s.HandleWebSocket)
	r.Get("/*", s.HandlePage)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HandlePage moves the request's session to the request path and answers
// with the full page. A request without a known session cookie starts a
// new session there.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.RequestURI()

	sess := s.session(r)
	if sess == nil {
		sess = s.sessions.Create(path)
		http.SetCookie(w, s.cookie(sess))
	} else if loc := sess.Host.History().Location(); loc.Pathname+loc.Search != path {
		sess.Host.History().Push(path, nil)
	}

	tree, err := sess.Host.Render(r.Context())
	if err != nil {
		s.logger.Error("render failed", "session_id", sess.ID, "path", path, "error", err)
		http.Error(w, errors.FromError(err, "E102").FormatCompact(), http.StatusInternalServerError)
		return
	}
	sess.Reset(tree)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = s.renderer.RenderPage(w, render.PageData{
		Title:  s.config.Title,
		Body:   tree,
		Script: clientScript,
	})
	if err != nil {
		s.logger.Error("page write failed", "session_id", sess.ID, "error", err)
	}
}

func (s *Server) session(r *http.Request) *Session {
	c, err := r.Cookie(s.config.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	return s.sessions.Get(c.Value)
}

func (s *Server) cookie(sess *Session) *http.Cookie {
	return &http.Cookie{
		Name:     s.config.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Run starts the server and blocks until it is interrupted.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger replaces the server logger. Sessions created earlier keep
// the logger they were created with.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	s.logger = logger

	m := s.sessions
	m.mu.Lock()
	m.logger = logger
	m.opts = append(m.opts, liveroute.WithHostLogger(logger))
	m.mu.Unlock()
}
