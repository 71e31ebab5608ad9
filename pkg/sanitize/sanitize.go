// Package sanitize neutralizes markup in user supplied text.
package sanitize

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces &, <, >, " and ' with their entities.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// String trims and escapes s.
func String(s string) string {
	return EscapeHTML(strings.TrimSpace(s))
}

// Value sanitizes v when it is a string and returns anything else unchanged.
func Value(v any) any {
	switch s := v.(type) {
	case string:
		return String(s)
	case *string:
		if s == nil {
			return v
		}
		out := String(*s)
		return &out
	default:
		return v
	}
}
