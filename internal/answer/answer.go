// Package answer grades free-text answers against the accepted translations
// of a word.
package answer

import (
	"github.com/vytor/wordflash/internal/textnorm"
)

// Quality scores produced by Evaluate.
const (
	QualityExact = 5
	QualityFuzzy = 4
	QualityWrong = 2
	QualityEmpty = 0

	// MaxQualityWhenWrong caps a caller-supplied quality for a wrong answer.
	MaxQualityWhenWrong = 2
)

// Result is the outcome of grading one answer.
type Result struct {
	Correct  bool
	Quality  int
	Accepted []string // normalized accepted options, sorted
}

// Evaluate grades answer against the word's translations. An exact option
// match scores QualityExact, a near miss QualityFuzzy, anything else
// QualityWrong. An empty answer or an empty translation set scores
// QualityEmpty.
func Evaluate(answer string, translations []string) Result {
	accepted := textnorm.SplitOptions(translations...)
	normalized := textnorm.Normalize(answer)
	if normalized == "" || len(accepted) == 0 {
		return Result{Quality: QualityEmpty, Accepted: accepted}
	}

	given := textnorm.SplitOptions(answer)
	if len(given) == 0 {
		given = []string{normalized}
	}

	index := make(map[string]struct{}, len(accepted))
	for _, opt := range accepted {
		index[opt] = struct{}{}
	}
	for _, g := range given {
		if _, ok := index[g]; ok {
			return Result{Correct: true, Quality: QualityExact, Accepted: accepted}
		}
	}

	for _, g := range given {
		for _, opt := range accepted {
			if IsFuzzyMatch(g, opt) {
				return Result{Correct: true, Quality: QualityFuzzy, Accepted: accepted}
			}
		}
	}
	return Result{Quality: QualityWrong, Accepted: accepted}
}

// ApplyQualityOverride returns the quality to feed the scheduler when the
// caller supplies its own score. The override is clamped to [0,5] and capped
// at MaxQualityWhenWrong for an incorrect answer.
func ApplyQualityOverride(correct bool, computed int, override *int) int {
	if override == nil {
		return computed
	}
	q := *override
	if q < 0 {
		q = 0
	}
	if q > 5 {
		q = 5
	}
	if !correct && q > MaxQualityWhenWrong {
		q = MaxQualityWhenWrong
	}
	return q
}
