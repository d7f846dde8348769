package models

import "time"

// Word statuses.
const (
	StatusNew     = "new"
	StatusLearned = "learned"
	StatusKnown   = "known"
)

// Review event results.
const (
	ResultCorrect = "correct"
	ResultWrong   = "wrong"
)

// Translation provenance.
const (
	TranslationCatalog = "catalog"
	TranslationCustom  = "custom"
)

// Study session types.
const (
	SessionLearn  = "learn"
	SessionReview = "review"
)

type Profile struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	NativeLang       string    `json:"native_lang"`
	TargetLang       string    `json:"target_lang"`
	LearnBatchSize   int       `json:"learn_batch_size"`
	DailyReviewWords int       `json:"daily_review_words"`
	CreatedAt        time.Time `json:"created_at"`
}

type Word struct {
	ID    int64  `json:"id"`
	Lemma string `json:"lemma"`
	Lang  string `json:"lang"`
	Rank  *int   `json:"rank,omitempty"`
}

type Translation struct {
	WordID     int64  `json:"word_id"`
	TargetLang string `json:"target_lang"`
	Text       string `json:"text"`
	Source     string `json:"source"`
}

// TranslationSet maps word ids to the translations accepted for them.
type TranslationSet map[int64][]Translation

// Texts returns the raw translation strings for a word.
func (s TranslationSet) Texts(wordID int64) []string {
	items := s[wordID]
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.Text)
	}
	return out
}

// WordProgress is the learner's scheduling state for one word.
type WordProgress struct {
	ProfileID     int64      `json:"profile_id"`
	WordID        int64      `json:"word_id"`
	Status        string     `json:"status"`
	Stage         int        `json:"stage"`
	Repetitions   int        `json:"repetitions"`
	IntervalDays  int        `json:"interval_days"`
	EaseFactor    float64    `json:"ease_factor"`
	LearnedAt     *time.Time `json:"learned_at"`
	LastReviewAt  *time.Time `json:"last_review_at"`
	NextReviewAt  *time.Time `json:"next_review_at"`
	CorrectStreak int        `json:"correct_streak"`
	WrongStreak   int        `json:"wrong_streak"`
	// Version guards read-modify-write updates of the row.
	Version int `json:"-"`
}

// DueWord is a WordProgress joined with the word's display form.
type DueWord struct {
	WordProgress
	Lemma string `json:"lemma"`
}

type ReviewEvent struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	WordID    int64     `json:"word_id"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type StudySession struct {
	ID           int64      `json:"id"`
	ProfileID    int64      `json:"profile_id"`
	SessionType  string     `json:"session_type"`
	WordsTotal   int        `json:"words_total"`
	WordsCorrect int        `json:"words_correct"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}

type ReadingSource struct {
	ID         int64     `json:"id"`
	CorpusID   *int64    `json:"corpus_id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Lang       string    `json:"lang"`
	CorpusName string    `json:"corpus_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Passage is one indexed reading chunk of a source. Tokens holds the
// distinct lower-cased tokens of Text.
type Passage struct {
	ID        int64               `json:"id"`
	SourceID  int64               `json:"source_id"`
	Position  int                 `json:"position"`
	WordCount int                 `json:"word_count"`
	Text      string              `json:"text"`
	Tokens    map[string]struct{} `json:"-"`
}

// NewPassage is a passage to be stored together with its token counts.
type NewPassage struct {
	Position    int
	Text        string
	WordCount   int
	TokenCounts map[string]int
}
