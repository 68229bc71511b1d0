package corrector

import (
	"strings"
	"unicode"
)

func isTitle(s string) bool {
	r := []rune(s)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	return strings.ToLower(string(r[1:])) == string(r[1:])
}

func isUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

// matchCase gives repl the casing pattern of orig: all caps, title case or
// unchanged.
func matchCase(orig, repl string) string {
	switch {
	case len([]rune(orig)) == 1 && isUpper(orig):
		return title(repl)
	case isUpper(orig):
		return strings.ToUpper(repl)
	case isTitle(orig):
		return title(repl)
	}
	return repl
}
