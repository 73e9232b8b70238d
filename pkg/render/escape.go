package render

import "strings"

// escape converts HTML special characters to entities. In attribute mode it
// also escapes whitespace that could break attribute parsing.
func escape(s string, attr bool) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case r == '"':
			buf.WriteString("&quot;")
		case r == '\'':
			buf.WriteString("&#39;")
		case attr && r == '\n':
			buf.WriteString("&#10;")
		case attr && r == '\r':
			buf.WriteString("&#13;")
		case attr && r == '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

func escapeHTML(s string) string { return escape(s, false) }

func escapeAttr(s string) string { return escape(s, true) }
