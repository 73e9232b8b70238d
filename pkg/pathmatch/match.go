package pathmatch

// Options configures a single match.
type Options struct {
	// Path is the pattern. An empty Path means the route has no path of its
	// own and inherits the parent match.
	Path string

	// Exact requires the pattern to consume the whole pathname.
	Exact bool

	// Strict makes a trailing slash significant.
	Strict bool

	// Sensitive enables case-sensitive matching.
	Sensitive bool
}

// Match is the result of a successful match. Matches are never mutated after
// they are returned.
type Match struct {
	// Path is the pattern that matched.
	Path string

	// URL is the matched portion of the pathname.
	URL string

	// IsExact reports whether the whole pathname was matched.
	IsExact bool

	// Params maps parameter names to their values.
	Params map[string]string
}

// Param returns the named parameter, or "" when absent.
func (m *Match) Param(name string) string {
	if m == nil {
		return ""
	}
	return m.Params[name]
}

// Root returns the match a router reports for pathname before any route
// has been consulted.
func Root(pathname string) *Match {
	return &Match{
		Path:    "/",
		URL:     "/",
		IsExact: pathname == "/",
		Params:  map[string]string{},
	}
}

// Matcher matches pathnames against patterns using its own Cache.
type Matcher struct {
	cache *Cache
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithCacheLimit gives the matcher a private cache of the given size.
func WithCacheLimit(limit int) Option {
	return func(m *Matcher) {
		m.cache = NewCache(limit)
	}
}

// WithCache makes the matcher use an existing cache.
func WithCache(c *Cache) Option {
	return func(m *Matcher) {
		if c != nil {
			m.cache = c
		}
	}
}

// New creates a Matcher. Without options it owns a cache of DefaultCacheLimit.
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = NewCache(DefaultCacheLimit)
	}
	return m
}

// Default is the process-wide matcher shared by routes that are not given
// their own.
var Default = New()

// Cache returns the matcher's pattern cache.
func (m *Matcher) Cache() *Cache { return m.cache }

// Match matches pathname against opts.Path.
// An empty opts.Path returns parent unchanged. A nil result with a nil error
// means no match.
func (m *Matcher) Match(pathname string, opts Options, parent *Match) (*Match, error) {
	if opts.Path == "" {
		return parent, nil
	}

	p, err := m.cache.compile(opts.Path, opts.Exact, opts.Strict, opts.Sensitive)
	if err != nil {
		return nil, err
	}

	url, values, ok := p.exec(pathname)
	if !ok {
		return nil, nil
	}

	isExact := pathname == url
	if opts.Exact && !isExact {
		return nil, nil
	}
	if opts.Path == "/" && url == "" {
		url = "/"
	}

	params := make(map[string]string, len(values))
	for i, v := range values {
		if v != nil {
			params[p.keys[i].Name] = *v
		}
	}

	return &Match{
		Path:    opts.Path,
		URL:     url,
		IsExact: isExact,
		Params:  params,
	}, nil
}

// MatchFirst tries each pattern in order and returns the first match.
// Blank entries are skipped. opts.Path is ignored.
func (m *Matcher) MatchFirst(pathname string, patterns []string, opts Options) (*Match, error) {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		o := opts
		o.Path = pattern
		match, err := m.Match(pathname, o, nil)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, nil
}
