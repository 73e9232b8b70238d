package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/liveroute/internal/errors"
	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "liveroute.json"

	// DefaultAddr is the default demo server address.
	DefaultAddr = ":8080"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultInitialPath is the location history starts at.
	DefaultInitialPath = "/"

	// DefaultTitle is the default page title.
	DefaultTitle = "liveroute"
)

// Config represents liveroute.json.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// CacheLimit bounds the compiled pattern cache.
	CacheLimit int `json:"cacheLimit,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// InitialPath is where a fresh history starts.
	InitialPath string `json:"initialPath,omitempty"`

	// Server contains demo server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Routes lists the routes in evaluation order.
	Routes []RouteConfig `json:"routes,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// Title is the HTML page title.
	Title string `json:"title,omitempty"`
}

// RouteConfig declares one route.
type RouteConfig struct {
	Name       string   `json:"name,omitempty"`
	Path       string   `json:"path,omitempty"`
	LivePath   PathList `json:"livePath,omitempty"`
	AlwaysLive bool     `json:"alwaysLive,omitempty"`
	Exact      bool     `json:"exact,omitempty"`
	Strict     bool     `json:"strict,omitempty"`
	Sensitive  bool     `json:"sensitive,omitempty"`

	// ForceUnmount is an expr-lang expression evaluated on live-only
	// matches.
	ForceUnmount string `json:"forceUnmount,omitempty"`

	// Text is rendered as the view's heading. Defaults to the route name.
	Text string `json:"text,omitempty"`
}

// PathList is a list of path patterns that also accepts a single string.
type PathList []string

// UnmarshalJSON accepts a string, a list, or null. List items that are not
// strings are skipped.
func (p *PathList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = PathList{single}
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("livePath must be a string or a list: %w", err)
	}
	out := make(PathList, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	*p = out
	return nil
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads liveroute.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E103").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'liveroute init' to write an example config")
		}
		return nil, errors.New("E103").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E103").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E103").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E103").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.CacheLimit == 0 {
		c.CacheLimit = pathmatch.DefaultCacheLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.InitialPath == "" {
		c.InitialPath = DefaultInitialPath
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Title == "" {
		if c.Name != "" {
			c.Server.Title = c.Name
		} else {
			c.Server.Title = DefaultTitle
		}
	}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.CacheLimit < 0 {
		return errors.New("E104").WithDetailf("cacheLimit must not be negative, got %d", c.CacheLimit)
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return errors.New("E104").
			WithDetailf("unknown logLevel %q", c.LogLevel).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if !strings.HasPrefix(c.InitialPath, "/") {
		return errors.New("E104").WithDetailf("initialPath %q must start with /", c.InitialPath)
	}

	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if r.Path == "" && len(r.LivePath) == 0 && !r.AlwaysLive {
			return errors.New("E104").
				WithDetailf("routes[%d] has neither path nor livePath", i).
				WithSuggestion("Give every route a path")
		}
		name := r.displayName()
		if seen[name] {
			return errors.New("E104").
				WithDetailf("duplicate route name %q", name).
				WithSuggestion("Set a unique name on routes sharing a path")
		}
		seen[name] = true
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	return logLevels[strings.ToLower(c.LogLevel)]
}

func (r RouteConfig) displayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}

// BuildRoutes turns the route declarations into live routes. Each view is a
// section with a heading. Hide and reappear hooks are logged to logger.
func (c *Config) BuildRoutes(logger *slog.Logger) ([]liveroute.Route, error) {
	if logger == nil {
		logger = slog.Default()
	}

	routes := make([]liveroute.Route, 0, len(c.Routes))
	for _, rc := range c.Routes {
		r, err := rc.build(logger)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (rc RouteConfig) build(logger *slog.Logger) (liveroute.Route, error) {
	name := rc.displayName()
	text := rc.Text
	if text == "" {
		text = name
	}

	r := liveroute.Route{
		Name:       name,
		Path:       rc.Path,
		Exact:      rc.Exact,
		Strict:     rc.Strict,
		Sensitive:  rc.Sensitive,
		LivePath:   []string(rc.LivePath),
		AlwaysLive: rc.AlwaysLive,
		Render: func(p liveroute.Props) *vdom.VNode {
			return vdom.Section(
				vdom.Data("route", name),
				vdom.H1(text),
				vdom.P(vdom.Textf("location: %s", p.Location.Path())),
			)
		},
	}

	if rc.ForceUnmount != "" {
		pred, err := liveroute.CompilePredicate(rc.ForceUnmount)
		if err != nil {
			return r, errors.FromError(err, "E105").WithDetailf("route %q: %v", name, err)
		}
		r.ForceUnmount = pred
	}

	if r.IsLive() {
		log := logger.With("route", name)
		r.OnHide = func(loc history.Location, m *pathmatch.Match, _ history.History, _ []string, _ bool) {
			log.Info("route hidden", "pathname", loc.Pathname, "livePath", m.Path)
		}
		r.OnReappear = func(loc history.Location, _ *pathmatch.Match, _ history.History, _ []string, _ bool) {
			log.Info("route reappeared", "pathname", loc.Pathname)
		}
	}
	return r, nil
}

// Example returns the demo configuration written by 'liveroute init'.
func Example() *Config {
	cfg := &Config{
		Name:        "liveroute demo",
		InitialPath: "/a",
		Routes: []RouteConfig{
			{Name: "live-on-b", Path: "/a", LivePath: PathList{"/b"}, Text: "Live on /b"},
			{
				Name:         "live-on-bcd",
				Path:         "/a",
				LivePath:     PathList{"/b", "/c", "/d"},
				ForceUnmount: `pathname == "/d"`,
				Text:         "Live on /b, /c, unmounted on /d",
			},
			{Name: "always-live", Path: "/a", AlwaysLive: true, Text: "Always live"},
			{Path: "/b", Text: "Page B"},
			{Path: "/c", Text: "Page C"},
			{Path: "/d", Text: "Page D"},
		},
	}
	cfg.applyDefaults()
	return cfg
}
