package reading

import (
	"sort"

	"github.com/vytor/wordflash/internal/models"
)

// DefaultCandidateLimit bounds the candidate list returned by Rank.
const DefaultCandidateLimit = 80

// Index is an inverted token index over an immutable passage pool. It is
// safe for concurrent readers.
type Index struct {
	passages map[int64]*models.Passage
	postings map[string][]int64
}

// NewIndex indexes passages by their token sets.
func NewIndex(passages []models.Passage) *Index {
	idx := &Index{
		passages: make(map[int64]*models.Passage, len(passages)),
		postings: make(map[string][]int64),
	}
	for i := range passages {
		p := &passages[i]
		idx.passages[p.ID] = p
		for tok := range p.Tokens {
			idx.postings[tok] = append(idx.postings[tok], p.ID)
		}
	}
	return idx
}

// Len returns the number of indexed passages.
func (idx *Index) Len() int {
	return len(idx.passages)
}

// Passage returns an indexed passage by id.
func (idx *Index) Passage(id int64) (*models.Passage, bool) {
	p, ok := idx.passages[id]
	return p, ok
}

// Filter restricts which passages Rank may return. A nil Sources set admits
// every source.
type Filter struct {
	Sources map[int64]struct{}
	Blocked map[int64]struct{}
}

func (f Filter) allows(p *models.Passage) bool {
	if _, blocked := f.Blocked[p.ID]; blocked {
		return false
	}
	if f.Sources == nil {
		return true
	}
	_, ok := f.Sources[p.SourceID]
	return ok
}

// Candidate is a passage together with its target-token hit count.
type Candidate struct {
	Passage *models.Passage
	Hits    int
}

// Rank counts target hits per passage and returns at most limit passages
// with at least one hit, densest first and shortest on ties.
func (idx *Index) Rank(targets []string, f Filter, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	hits := make(map[int64]int)
	seen := make(map[string]struct{}, len(targets))
	for _, tok := range targets {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		for _, id := range idx.postings[tok] {
			hits[id]++
		}
	}

	out := make([]Candidate, 0, len(hits))
	for id, n := range hits {
		p := idx.passages[id]
		if !f.allows(p) {
			continue
		}
		out = append(out, Candidate{Passage: p, Hits: n})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Hits != b.Hits {
			return a.Hits > b.Hits
		}
		if a.Passage.WordCount != b.Passage.WordCount {
			return a.Passage.WordCount < b.Passage.WordCount
		}
		return a.Passage.ID < b.Passage.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
