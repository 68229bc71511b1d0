// Package tokenizer splits text into words and the runs of characters
// between them. Words are maximal runs of letters; everything else is kept
// verbatim so a document can be rebuilt from its tokens.
package tokenizer

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var tokenRe = regexp.MustCompile(`\p{L}+|[^\p{L}]+`)

// Token is a piece of the input.
type Token struct {
	Text   string
	IsWord bool
}

// Split returns the tokens of text after NFC normalization. Joining the
// Text of all tokens gives the normalized input back.
func Split(text string) []Token {
	parts := tokenRe.FindAllString(norm.NFC.String(text), -1)
	out := make([]Token, len(parts))
	for i, p := range parts {
		out[i] = Token{Text: p, IsWord: IsWord(p)}
	}
	return out
}

// Words returns only the words of text.
func Words(text string) []string {
	var out []string
	for _, t := range Split(text) {
		if t.IsWord {
			out = append(out, t.Text)
		}
	}
	return out
}

// IsWord reports whether s is made of letters only.
func IsWord(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
}

// ReadWords streams the words of r line by line to fn.
func ReadWords(r io.Reader, fn func(word string)) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for s.Scan() {
		for _, w := range Words(s.Text()) {
			fn(w)
		}
	}
	return s.Err()
}

// Join concatenates token texts.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
