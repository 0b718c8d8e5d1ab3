package services

import (
	"strings"
	"unicode"
)

// EscapeQueryChars escapes every character that has meaning in the
// engine's query syntax by prefixing it with a backslash. The escaped
// form round-trips any text value through a filter clause.
func EscapeQueryChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '+', '-', '!', '(', ')', ':', '^', '[', ']', '"',
			'{', '}', '~', '*', '?', '|', '&', ';', '/':
			b.WriteByte('\\')
		default:
			if unicode.IsSpace(r) {
				b.WriteByte('\\')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
