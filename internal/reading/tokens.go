// Package reading assembles reading-practice bundles: it derives the
// learner's target tokens, ranks indexed passages against them and greedily
// builds passage bundles that cover as many targets as fit a word budget.
package reading

import "github.com/vytor/wordflash/internal/textnorm"

// MaxRecentWords bounds how many recently learned words feed token
// extraction.
const MaxRecentWords = 300

// ExtractTargetTokens walks wordIDs in recency order and collects the
// distinct translation tokens of each word, stopping at n tokens.
func ExtractTargetTokens(wordIDs []int64, translations map[int64][]string, n int) []string {
	if n <= 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, id := range wordIDs {
		for _, tok := range textnorm.TranslationTokens(translations[id]) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
			if len(out) >= n {
				return out
			}
		}
	}
	return out
}
