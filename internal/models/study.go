package models

import "time"

// LearnWord is a word offered in a learn batch.
type LearnWord struct {
	WordID       int64    `json:"word_id"`
	Word         string   `json:"word"`
	Translation  string   `json:"translation"`
	Translations []string `json:"translations"`
	Rank         *int     `json:"rank,omitempty"`
}

type LearnBatch struct {
	SessionID *int64      `json:"session_id"`
	Words     []LearnWord `json:"words"`
}

// ReviewWord is a due word offered in a review batch.
type ReviewWord struct {
	WordID       int64      `json:"word_id"`
	Word         string     `json:"word"`
	Translation  string     `json:"translation"`
	Translations []string   `json:"translations"`
	LearnedAt    *time.Time `json:"learned_at"`
	NextReviewAt *time.Time `json:"next_review_at"`
	Stage        int        `json:"stage"`
}

type ReviewBatch struct {
	SessionID *int64       `json:"session_id"`
	Words     []ReviewWord `json:"words"`
}

type AnswerInput struct {
	WordID  int64  `json:"word_id"`
	Answer  string `json:"answer"`
	Quality *int   `json:"quality,omitempty"`
}

type Submission struct {
	SessionID *int64        `json:"session_id"`
	Words     []AnswerInput `json:"words"`
}

type AnswerResult struct {
	WordID         int64      `json:"word_id"`
	Correct        bool       `json:"correct"`
	CorrectAnswers []string   `json:"correct_answers"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
}

type LearnOutcome struct {
	AllCorrect   bool           `json:"all_correct"`
	WordsTotal   int            `json:"words_total"`
	WordsCorrect int            `json:"words_correct"`
	Learned      int            `json:"learned"`
	Results      []AnswerResult `json:"results"`
}

type ReviewOutcome struct {
	WordsTotal     int            `json:"words_total"`
	WordsCorrect   int            `json:"words_correct"`
	WordsIncorrect int            `json:"words_incorrect"`
	Results        []AnswerResult `json:"results"`
}
