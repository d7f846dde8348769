package answer

// Thresholds of the length-scaled fuzzy test.
const (
	maxLengthGap      = 2
	shortWordLen      = 6
	mediumWordLen     = 8
	minSimilarityRate = 0.88
)

// IsFuzzyMatch reports whether two normalized strings are close enough to
// count as the same answer. Short words tolerate one edit, medium words two,
// long words are compared by similarity ratio. Adjacent swaps count as a
// single edit, so "teh" matches "the".
func IsFuzzyMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	ra, rb := []rune(a), []rune(b)
	gap := len(ra) - len(rb)
	if gap < 0 {
		gap = -gap
	}
	if gap > maxLengthGap {
		return false
	}
	shorter := min(len(ra), len(rb))
	switch {
	case shorter <= shortWordLen:
		return editDistance(ra, rb) <= 1
	case shorter <= mediumWordLen:
		return editDistance(ra, rb) <= 2
	default:
		return similarity(ra, rb) >= minSimilarityRate
	}
}

// EditDistance is the edit distance between a and b in runes, counting
// insertions, deletions, substitutions and swaps of adjacent runes as one
// edit each.
func EditDistance(a, b string) int {
	return editDistance([]rune(a), []rune(b))
}

func editDistance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(b)]
}

// SimilarityRatio is the Ratcliff/Obershelp ratio 2*M/T, where M is the
// number of characters in matching blocks and T the total length.
func SimilarityRatio(a, b string) float64 {
	return similarity([]rune(a), []rune(b))
}

func similarity(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(a, b)) / float64(total)
}

// matchingChars sums the sizes of the matching blocks found by repeatedly
// taking the longest common substring and recursing on both sides of it.
func matchingChars(a, b []rune) int {
	positions := make(map[rune][]int)
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	matched := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, positions, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside the given
// ranges; ties resolve to the earliest i, then the earliest j.
func longestMatch(a []rune, positions map[rune][]int, alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, bestk := alo, blo, 0
	lengths := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range positions[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return besti, bestj, bestk
}
