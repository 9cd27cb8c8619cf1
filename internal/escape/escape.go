// Package escape implements the character escaping applied when
// serializing XML text and attribute values, and the attribute-value
// whitespace normalization applied when parsing.
package escape

import (
	"encoding/xml"
	"strings"
)

// htmlNames maps runes to HTML named entities, built by inverting the
// tokenizer's entity table. Only runes outside ASCII participate; the
// five XML entities are always handled explicitly.
var htmlNames map[rune]string

func init() {
	htmlNames = make(map[rune]string, len(xml.HTMLEntity))
	for name, val := range xml.HTMLEntity {
		runes := []rune(val)
		if len(runes) != 1 || runes[0] < 0xa0 {
			continue
		}
		// Prefer the first name encountered deterministically: keep the
		// lexicographically smallest so output is stable across runs.
		if prev, ok := htmlNames[runes[0]]; !ok || name < prev {
			htmlNames[runes[0]] = name
		}
	}
}

// Text escapes character data content: & < > always, plus HTML named
// entities for non-ASCII runes when html is set.
func Text(s string, html bool) string {
	return escape(s, false, html)
}

// Attr escapes an attribute value for emission between double quotes.
func Attr(s string, html bool) string {
	return escape(s, true, html)
}

func escape(s string, quotes, html bool) string {
	var b strings.Builder
	last := 0
	for i, r := range s {
		var repl string
		switch r {
		case '&':
			repl = "&amp;"
		case '<':
			repl = "&lt;"
		case '>':
			repl = "&gt;"
		case '"':
			if !quotes {
				continue
			}
			repl = "&quot;"
		case '\'':
			if !quotes {
				continue
			}
			repl = "&apos;"
		default:
			if !html || r < 0xa0 {
				continue
			}
			name, ok := htmlNames[r]
			if !ok {
				continue
			}
			repl = "&" + name + ";"
		}
		b.WriteString(s[last:i])
		b.WriteString(repl)
		last = i + len(string(r))
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// NormalizeAttr applies XML attribute-value normalization to an
// already reference-resolved value: every tab, newline and carriage
// return becomes a single space.
func NormalizeAttr(s string) string {
	if !strings.ContainsAny(s, "\t\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\t', '\n', '\r':
			b.WriteByte(' ')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
