// Package srs schedules word reviews with an SM-2 variant.
package srs

import (
	"math"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

const (
	MinEase     = 1.3
	DefaultEase = 2.5

	// PassQuality is the lowest quality that keeps the repetition cycle going.
	PassQuality = 3
	// SeedQuality is applied when a word is learned for the first time.
	SeedQuality = 5

	day = 24 * time.Hour
)

// State is the scheduling part of a word's progress.
type State struct {
	Repetitions  int
	IntervalDays int
	EaseFactor   float64
	NextReviewAt time.Time
}

// Advance applies one review of the given quality (0..5) and returns the
// next scheduling state. A quality below PassQuality restarts the cycle
// with a one day interval; the ease factor never drops below MinEase.
func Advance(st State, quality int, now time.Time) State {
	ef := st.EaseFactor
	if ef <= 0 {
		ef = DefaultEase
	}
	miss := float64(5 - quality)
	ef = math.Max(MinEase, ef+0.1-miss*(0.08+miss*0.02))

	next := State{EaseFactor: ef}
	if quality < PassQuality {
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		switch {
		case st.Repetitions <= 0:
			next.IntervalDays = 1
		case st.Repetitions == 1:
			next.IntervalDays = 6
		default:
			next.IntervalDays = max(1, int(math.RoundToEven(float64(st.IntervalDays)*ef)))
		}
		next.Repetitions = st.Repetitions + 1
	}
	next.NextReviewAt = now.Add(time.Duration(next.IntervalDays) * day)
	return next
}

// StateOf extracts the scheduling state of p.
func StateOf(p models.WordProgress) State {
	st := State{
		Repetitions:  p.Repetitions,
		IntervalDays: p.IntervalDays,
		EaseFactor:   p.EaseFactor,
	}
	if p.NextReviewAt != nil {
		st.NextReviewAt = *p.NextReviewAt
	}
	return st
}

// ApplyReview returns p after a review answered with the given quality.
func ApplyReview(p models.WordProgress, quality int, correct bool, now time.Time) models.WordProgress {
	st := Advance(StateOf(p), quality, now)

	p.Repetitions = st.Repetitions
	p.IntervalDays = st.IntervalDays
	p.EaseFactor = st.EaseFactor
	p.Stage = st.Repetitions
	reviewed := now
	p.LastReviewAt = &reviewed
	due := st.NextReviewAt
	p.NextReviewAt = &due

	if correct {
		p.CorrectStreak++
		p.WrongStreak = 0
		if p.Status != models.StatusKnown && p.Status != models.StatusLearned {
			p.Status = models.StatusLearned
		}
	} else {
		p.WrongStreak++
		p.CorrectStreak = 0
	}
	return p
}

// NewLearned returns the progress of a word the learner has just learned:
// one passing review from the empty state.
func NewLearned(profileID, wordID int64, now time.Time) models.WordProgress {
	p := models.WordProgress{
		ProfileID:  profileID,
		WordID:     wordID,
		Status:     models.StatusNew,
		EaseFactor: DefaultEase,
	}
	p = ApplyReview(p, SeedQuality, true, now)
	learned := now
	p.LearnedAt = &learned
	return p
}

// SeedDue returns the progress of a word put straight into review; it is
// due immediately.
func SeedDue(profileID, wordID int64, now time.Time) models.WordProgress {
	at := now
	return models.WordProgress{
		ProfileID:    profileID,
		WordID:       wordID,
		Status:       models.StatusLearned,
		EaseFactor:   DefaultEase,
		LearnedAt:    &at,
		LastReviewAt: &at,
		NextReviewAt: &at,
	}
}

// ReviewEvent records the outcome of one submitted review answer.
func ReviewEvent(p models.WordProgress, correct bool, now time.Time) models.ReviewEvent {
	result := models.ResultWrong
	if correct {
		result = models.ResultCorrect
	}
	return models.ReviewEvent{
		ProfileID: p.ProfileID,
		WordID:    p.WordID,
		Result:    result,
		CreatedAt: now,
	}
}

// IsDue reports whether p should be reviewed at now.
func IsDue(p models.WordProgress, now time.Time) bool {
	return p.NextReviewAt != nil && !p.NextReviewAt.After(now)
}
