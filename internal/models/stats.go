package models

import "time"

// WeakWord is a studied word the learner has answered wrongly at least once.
type WeakWord struct {
	WordID       int64      `json:"word_id"`
	Word         string     `json:"word"`
	Translations []string   `json:"translations"`
	WrongCount   int        `json:"wrong_count"`
	CorrectCount int        `json:"correct_count"`
	Accuracy     float64    `json:"accuracy"`
	LearnedAt    *time.Time `json:"learned_at"`
	NextReviewAt *time.Time `json:"next_review_at"`
}

type WeakWords struct {
	Total int        `json:"total"`
	Items []WeakWord `json:"items"`
}

// ReviewPlanItem is a scheduled word, earliest review first.
type ReviewPlanItem struct {
	WordID       int64      `json:"word_id"`
	Word         string     `json:"word"`
	Translations []string   `json:"translations"`
	LearnedAt    *time.Time `json:"learned_at"`
	NextReviewAt time.Time  `json:"next_review_at"`
	Stage        int        `json:"stage"`
	Custom       bool       `json:"custom"`
}

type ReviewPlan struct {
	Total int              `json:"total"`
	Items []ReviewPlanItem `json:"items"`
}
