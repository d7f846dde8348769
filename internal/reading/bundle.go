package reading

import (
	"sort"
	"strings"

	"github.com/vytor/wordflash/internal/models"
)

const (
	// MaxBundleWords caps the word budget of any bundle.
	MaxBundleWords = 600
	// DefaultBundleBases is how many top candidates seed a bundle each.
	DefaultBundleBases = 10
)

// Messages returned instead of a bundle.
const (
	MsgNoTargets  = "No recently learned words to match."
	MsgNoSources  = "No reading sources found."
	MsgNoPassages = "No matching passages found."
)

// TargetRange returns the word budget of a bundle built for targetWords
// target tokens.
func TargetRange(targetWords int) (minWords, maxWords int) {
	base := max(1, targetWords)
	minWords = base * 10
	if base <= 3 {
		maxWords = minWords + 5
	} else {
		maxWords = minWords + base*10
	}
	maxWords = min(maxWords, MaxBundleWords)
	if maxWords < minWords {
		maxWords = minWords
	}
	return minWords, maxWords
}

// Bundle is an ordered group of passages read together.
type Bundle struct {
	Passages  []*models.Passage
	WordCount int
	Covered   map[string]struct{}
}

// PassageIDs returns the ids of the bundled passages in reading order.
func (b Bundle) PassageIDs() []int64 {
	ids := make([]int64, len(b.Passages))
	for i, p := range b.Passages {
		ids[i] = p.ID
	}
	return ids
}

// Text joins the passage texts with blank lines.
func (b Bundle) Text() string {
	parts := make([]string, 0, len(b.Passages))
	for _, p := range b.Passages {
		if t := strings.TrimSpace(p.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// BuildBundle grows a bundle from base by repeatedly adding the candidate
// that brings the most tokens not yet covered while the bundle stays within
// maxWords. Ties go to the shorter passage, then to the earlier candidate.
// Candidates adding no new token are never taken, so only base may exceed
// maxWords.
func BuildBundle(base *models.Passage, candidates []Candidate, maxWords int) Bundle {
	b := Bundle{
		Passages:  []*models.Passage{base},
		WordCount: base.WordCount,
		Covered:   make(map[string]struct{}, len(base.Tokens)),
	}
	for tok := range base.Tokens {
		b.Covered[tok] = struct{}{}
	}

	remaining := make([]*models.Passage, 0, len(candidates))
	for _, c := range candidates {
		if c.Passage.ID != base.ID {
			remaining = append(remaining, c.Passage)
		}
	}

	for {
		best := -1
		bestGain := 0
		for i, p := range remaining {
			if b.WordCount+p.WordCount > maxWords {
				continue
			}
			gain := newTokens(p, b.Covered)
			if gain > bestGain || (gain == bestGain && gain > 0 && p.WordCount < remaining[best].WordCount) {
				best, bestGain = i, gain
			}
		}
		if best < 0 {
			break
		}
		p := remaining[best]
		b.Passages = append(b.Passages, p)
		b.WordCount += p.WordCount
		for tok := range p.Tokens {
			b.Covered[tok] = struct{}{}
		}
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	if singleSource(b.Passages) {
		sort.SliceStable(b.Passages, func(i, j int) bool {
			return b.Passages[i].Position < b.Passages[j].Position
		})
	}
	return b
}

func newTokens(p *models.Passage, covered map[string]struct{}) int {
	n := 0
	for tok := range p.Tokens {
		if _, ok := covered[tok]; ok {
			continue
		}
		n++
	}
	return n
}

func singleSource(passages []*models.Passage) bool {
	for _, p := range passages[1:] {
		if p.SourceID != passages[0].SourceID {
			return false
		}
	}
	return true
}

// Selection is the bundle chosen for a reading request with its coverage
// statistics.
type Selection struct {
	Bundle
	Hits        int
	Coverage    float64
	Highlighted []string
}

// Select builds one bundle from each of the first bases candidates, orders
// them by coverage, hits and length, and returns the one at position
// variant (mod the number of bundles). It reports false when there is
// nothing to build from.
func Select(candidates []Candidate, targets []string, targetWords, variant, bases int) (Selection, bool) {
	if len(candidates) == 0 || len(targets) == 0 {
		return Selection{}, false
	}
	if bases <= 0 {
		bases = DefaultBundleBases
	}
	targetSet := make(map[string]struct{}, len(targets))
	for _, tok := range targets {
		targetSet[tok] = struct{}{}
	}
	_, maxWords := TargetRange(targetWords)

	scored := make([]Selection, 0, min(bases, len(candidates)))
	for _, c := range candidates[:min(bases, len(candidates))] {
		b := BuildBundle(c.Passage, candidates, maxWords)
		hits := 0
		for tok := range targetSet {
			if _, ok := b.Covered[tok]; ok {
				hits++
			}
		}
		scored = append(scored, Selection{
			Bundle:   b,
			Hits:     hits,
			Coverage: float64(hits) / float64(len(targetSet)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Coverage != b.Coverage {
			return a.Coverage > b.Coverage
		}
		if a.Hits != b.Hits {
			return a.Hits > b.Hits
		}
		return a.WordCount < b.WordCount
	})

	chosen := scored[max(0, variant)%len(scored)]
	chosen.Highlighted = make([]string, 0, chosen.Hits)
	for tok := range targetSet {
		if _, ok := chosen.Covered[tok]; ok {
			chosen.Highlighted = append(chosen.Highlighted, tok)
		}
	}
	sort.Strings(chosen.Highlighted)
	return chosen, true
}
