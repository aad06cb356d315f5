package matching

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Tokenize lowercases s and splits it into tokens. Letters, digits and the
// characters + # . stay inside tokens so "c++", "c#" and "node.js" survive;
// trailing dots are dropped.
func Tokenize(s string) []string {
	return tokenize(strings.ToLower(s))
}

// tokenizeCased splits like Tokenize but keeps the original spelling.
func tokenizeCased(s string) []string {
	return tokenize(s)
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.')
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimRight(f, ".")
		if !hasAlnum(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// stemTokens stems purely alphabetic tokens; anything with digits or symbols
// is kept verbatim.
func stemTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if isAlpha(t) {
			out[i] = english.Stem(t, false)
			continue
		}
		out[i] = t
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// indexOf returns the start of the first contiguous occurrence of needle in
// hay, or -1.
func indexOf(hay, needle []string) int {
	if len(needle) == 0 || len(needle) > len(hay) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(hay); i++ {
		for j, n := range needle {
			if hay[i+j] != n {
				continue outer
			}
		}
		return i
	}
	return -1
}
