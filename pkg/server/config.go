package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Address is the listen address. Default: ":8080".
	Address string

	// Title is the HTML page title.
	Title string

	// Routes returns the routes mounted on every new session.
	Routes func() []liveroute.Route

	// InitialPath is where a new session's history starts when the
	// session is created by a WebSocket. Default: "/".
	InitialPath string

	// CookieName names the session cookie. Default: "liveroute_session".
	CookieName string

	// MaxSessions caps live sessions; the least recently used is evicted.
	// 0 means no limit.
	MaxSessions int

	// Matcher is shared by all sessions. Default: pathmatch.Default.
	Matcher *pathmatch.Matcher

	// Registry receives the live route metrics and backs /metrics.
	// Default: a fresh registry.
	Registry *prometheus.Registry

	// WebSocket settings.
	ReadBufferSize  int
	WriteBufferSize int
	MaxMessageSize  int64
	CheckOrigin     func(r *http.Request) bool

	// WriteTimeout bounds each WebSocket write. Default: 10 seconds.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers. Default: 10 seconds.
	ReadHeaderTimeout time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		Title:             "liveroute",
		InitialPath:       "/",
		CookieName:        "liveroute_session",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    64 * 1024,
		CheckOrigin:       SameOriginCheck,
		WriteTimeout:      10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.InitialPath == "" {
		out.InitialPath = d.InitialPath
	}
	if out.CookieName == "" {
		out.CookieName = d.CookieName
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.Matcher == nil {
		out.Matcher = pathmatch.Default
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	if out.Routes == nil {
		out.Routes = func() []liveroute.Route { return nil }
	}
	return &out
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., same-origin request or curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
