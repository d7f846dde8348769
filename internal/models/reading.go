package models

// Corpus groups reading sources a learner can switch on or off.
type Corpus struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Sources int    `json:"sources"`
	Enabled bool   `json:"enabled"`
}

// ReadingRequest asks for a passage bundle around recently learned words.
type ReadingRequest struct {
	TargetWords int `json:"target_words"`
	Days        int `json:"days"`
	Variant     int `json:"variant"`
}

// ReadingPreview is a rendered passage bundle. Message is set instead of
// Text when no bundle could be built.
type ReadingPreview struct {
	Title                string   `json:"title"`
	Text                 string   `json:"text"`
	SourceTitle          *string  `json:"source_title"`
	SourceTitles         []string `json:"source_titles"`
	CorpusName           *string  `json:"corpus_name"`
	CorpusNames          []string `json:"corpus_names"`
	PassageIDs           []int64  `json:"passage_ids"`
	WordCount            int      `json:"word_count"`
	TargetWords          int      `json:"target_words"`
	TargetWordsRequested int      `json:"target_words_requested"`
	Hits                 int      `json:"hits"`
	Coverage             float64  `json:"coverage"`
	HighlightTokens      []string `json:"highlight_tokens"`
	Message              string   `json:"message,omitempty"`
}
