package presenter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Escape makes s safe to write to a terminal: control characters, which
// include ESC and so every terminal markup sequence, are replaced by visible
// \xNN or \uNNNN escapes, as is invalid UTF-8. Newlines and tabs are escaped
// too unless keepLayout is set.
func Escape(s string, keepLayout bool) string {
	if !needsEscape(s, keepLayout) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case keepLayout && (r == '\n' || r == '\t'):
			b.WriteRune(r)
		case r < 0x80 && unicode.IsControl(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		case unicode.IsControl(r) || r == '\u2028' || r == '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsEscape(s string, keepLayout bool) bool {
	for _, r := range s {
		if r == utf8.RuneError || r == '\u2028' || r == '\u2029' {
			return true
		}
		if unicode.IsControl(r) && !(keepLayout && (r == '\n' || r == '\t')) {
			return true
		}
	}
	return false
}
