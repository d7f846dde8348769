// Package textnorm canonicalizes learner answers, translations and passage
// text so they can be compared token by token.
package textnorm

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinTokenLength is the shortest translation token used for passage matching.
const MinTokenLength = 3

var (
	optionSep = regexp.MustCompile(`[;,/]`)
	tokenRe   = regexp.MustCompile(`\p{L}+(?:['\x{2019}]\p{L}+)?`)
	lower     = cases.Lower(language.Und)
)

// Normalize lower-cases text and collapses whitespace runs to single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(lower.String(text)), " ")
}

// SplitOptions splits multi-value translation strings on ';', ',' and '/'
// and returns the distinct normalized parts in sorted order.
func SplitOptions(texts ...string) []string {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, part := range optionSep.Split(text, -1) {
			if n := Normalize(part); n != "" {
				seen[n] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for opt := range seen {
		out = append(out, opt)
	}
	sort.Strings(out)
	return out
}

// Tokenize returns the lower-cased word tokens of text in order of
// appearance. A token is a run of letters with at most one internal
// apostrophe.
func Tokenize(text string) []string {
	matches := tokenRe.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = lower.String(m)
	}
	return matches
}

// TranslationTokens extracts the matchable tokens of a word's translations:
// every option is tokenized and tokens shorter than MinTokenLength dropped.
// Order follows the sorted option set; duplicates are kept.
func TranslationTokens(translations []string) []string {
	var tokens []string
	for _, opt := range SplitOptions(translations...) {
		for _, tok := range Tokenize(opt) {
			tok = strings.Trim(tok, "'’")
			if utf8.RuneCountInString(tok) < MinTokenLength {
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
