package reading

import (
	"strings"

	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/textnorm"
)

// Default passage sizes used when importing texts.
const (
	DefaultPassageMinWords = 80
	DefaultPassageMaxWords = 140
)

// ExtractParagraphs splits text on blank lines, joining the lines of each
// paragraph with single spaces.
func ExtractParagraphs(text string) []string {
	var (
		paragraphs []string
		buf        []string
	)
	flush := func() {
		if len(buf) > 0 {
			paragraphs = append(paragraphs, strings.Join(buf, " "))
			buf = buf[:0]
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return paragraphs
}

// BuildPassages packs consecutive paragraphs into passages of roughly
// minWords..maxWords words. A single paragraph longer than maxWords becomes
// its own passage.
func BuildPassages(paragraphs []string, minWords, maxWords int) []string {
	var (
		passages []string
		buf      []string
		words    int
	)
	for _, para := range paragraphs {
		n := len(textnorm.Tokenize(para))
		if n == 0 {
			continue
		}
		if words+n > maxWords && len(buf) > 0 {
			passages = append(passages, strings.Join(buf, " "))
			buf = []string{para}
			words = n
		} else {
			buf = append(buf, para)
			words += n
		}
		if words >= minWords {
			passages = append(passages, strings.Join(buf, " "))
			buf = nil
			words = 0
		}
	}
	if len(buf) > 0 {
		passages = append(passages, strings.Join(buf, " "))
	}
	return passages
}

// SplitText turns a raw text into positioned passages with token counts.
func SplitText(text string, minWords, maxWords int) []models.NewPassage {
	var out []models.NewPassage
	for _, body := range BuildPassages(ExtractParagraphs(text), minWords, maxWords) {
		tokens := textnorm.Tokenize(body)
		if len(tokens) == 0 {
			continue
		}
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		out = append(out, models.NewPassage{
			Position:    len(out) + 1,
			Text:        body,
			WordCount:   len(tokens),
			TokenCounts: counts,
		})
	}
	return out
}
