package pathmatch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// tokenRegexp splits a pattern into static text and parameter tokens.
// Groups: 1 escaped char, 2 prefix, 3 name, 4 custom capture, 5 unnamed group,
// 6 modifier, 7 asterisk.
var tokenRegexp = regexp.MustCompile(`(\\.)|([/.])?(?:(?::(\w+)(?:\(((?:\\.|[^\\()])+)\))?|\(((?:\\.|[^\\()])+)\))([+*?])?|(\*))`)

// groupEscaper escapes characters that would change the meaning of a custom
// capture group.
var groupEscaper = regexp.MustCompile(`([=!:$/()])`)

const delimiter = "/"

// Key describes one parameter of a compiled pattern.
type Key struct {
	Name      string
	Prefix    string
	Delimiter string
	Optional  bool
	Repeat    bool
	Partial   bool
	Asterisk  bool
	Pattern   string
}

// token is either static text (key == nil) or a parameter.
type token struct {
	text string
	key  *Key
}

// Pattern is a compiled path pattern.
type Pattern struct {
	source   string
	re       *regexp.Regexp
	keys     []Key
	urlGroup int
}

// Source returns the pattern text the Pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// Keys returns the parameter keys in positional order.
func (p *Pattern) Keys() []Key { return p.keys }

// String returns the generated regular expression.
func (p *Pattern) String() string { return p.re.String() }

// exec runs the pattern against pathname.
// It returns the matched URL and the positional parameter values;
// ok is false when the pattern does not match.
func (p *Pattern) exec(pathname string) (url string, values []*string, ok bool) {
	idx := p.re.FindStringSubmatchIndex(pathname)
	if idx == nil {
		return "", nil, false
	}
	url = pathname[idx[2*p.urlGroup]:idx[2*p.urlGroup+1]]
	values = make([]*string, len(p.keys))
	for i := range p.keys {
		g := p.urlGroup + 1 + i
		if idx[2*g] < 0 {
			continue
		}
		v := pathname[idx[2*g]:idx[2*g+1]]
		values[i] = &v
	}
	return url, values, true
}

// parse tokenizes a pattern.
func parse(pattern string) []token {
	var (
		tokens []token
		key    int
		index  int
		path   strings.Builder
	)

	for _, m := range tokenRegexp.FindAllStringSubmatchIndex(pattern, -1) {
		group := func(n int) (string, bool) {
			if m[2*n] < 0 {
				return "", false
			}
			return pattern[m[2*n]:m[2*n+1]], true
		}

		path.WriteString(pattern[index:m[0]])
		index = m[1]

		if escaped, ok := group(1); ok {
			path.WriteString(escaped[1:])
			continue
		}

		var next string
		if index < len(pattern) {
			next = pattern[index : index+1]
		}
		prefix, hasPrefix := group(2)
		name, _ := group(3)
		capture, _ := group(4)
		unnamed, _ := group(5)
		modifier, _ := group(6)
		_, asterisk := group(7)

		if path.Len() > 0 {
			tokens = append(tokens, token{text: path.String()})
			path.Reset()
		}

		k := &Key{
			Name:      name,
			Prefix:    prefix,
			Delimiter: delimiter,
			Optional:  modifier == "?" || modifier == "*",
			Repeat:    modifier == "+" || modifier == "*",
			Partial:   hasPrefix && next != "" && next != prefix,
			Asterisk:  asterisk,
		}
		if hasPrefix {
			k.Delimiter = prefix
		}
		if k.Name == "" {
			k.Name = strconv.Itoa(key)
			key++
		}

		switch {
		case capture != "":
			k.Pattern = groupEscaper.ReplaceAllString(capture, `\$1`)
		case unnamed != "":
			k.Pattern = groupEscaper.ReplaceAllString(unnamed, `\$1`)
		case asterisk:
			k.Pattern = ".*"
		default:
			k.Pattern = "[^" + regexp.QuoteMeta(k.Delimiter) + "]+?"
		}
		tokens = append(tokens, token{key: k})
	}

	if index < len(pattern) {
		path.WriteString(pattern[index:])
	}
	if path.Len() > 0 {
		tokens = append(tokens, token{text: path.String()})
	}
	return tokens
}

// Compile compiles pattern into a Pattern.
//
// end corresponds to an exact match. When end is false the generated
// expression still requires the match to stop at a "/" or at the end of the
// pathname; RE2 has no lookahead, so the boundary is consumed outside an
// explicit URL capture group instead.
func Compile(pattern string, end, strict, sensitive bool) (*Pattern, error) {
	var (
		route strings.Builder
		keys  []Key
	)

	for _, tok := range parse(pattern) {
		if tok.key == nil {
			route.WriteString(regexp.QuoteMeta(tok.text))
			continue
		}
		k := *tok.key
		keys = append(keys, k)

		prefix := regexp.QuoteMeta(k.Prefix)
		capture := "(?:" + k.Pattern + ")"
		if k.Repeat {
			capture += "(?:" + prefix + capture + ")*"
		}
		if k.Optional {
			if !k.Partial {
				capture = "(?:" + prefix + "(" + capture + "))?"
			} else {
				capture = prefix + "(" + capture + ")?"
			}
		} else {
			capture = prefix + "(" + capture + ")"
		}
		route.WriteString(capture)
	}

	body := route.String()
	endsWithDelimiter := strings.HasSuffix(body, delimiter)
	if !strict {
		if endsWithDelimiter {
			body = body[:len(body)-len(delimiter)]
		}
		body += "(?:" + delimiter + "$)?"
	}

	var flags string
	if !sensitive {
		flags = "(?i)"
	}

	p := &Pattern{source: pattern, keys: keys}
	var expr string
	switch {
	case end:
		expr = flags + "^" + body + "$"
	case strict && endsWithDelimiter:
		expr = flags + "^" + body
	default:
		expr = flags + "^(" + body + ")(?:" + delimiter + "|$)"
		p.urlGroup = 1
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pathmatch: compile %q: %w", pattern, err)
	}
	p.re = re
	return p, nil
}
