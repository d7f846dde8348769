package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/srs"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestAdvance_PerfectScore(t *testing.T) {
	st := srs.State{Repetitions: 2, IntervalDays: 10, EaseFactor: 2.5}

	next := srs.Advance(st, 5, now)

	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, 26, next.IntervalDays)
	assert.Equal(t, 3, next.Repetitions)
	assert.Equal(t, now.Add(26*24*time.Hour), next.NextReviewAt)
}

func TestAdvance_Lapse(t *testing.T) {
	for quality := 0; quality < srs.PassQuality; quality++ {
		st := srs.State{Repetitions: 7, IntervalDays: 40, EaseFactor: 2.5}

		next := srs.Advance(st, quality, now)

		assert.Equal(t, 0, next.Repetitions, "quality %d should reset repetitions", quality)
		assert.Equal(t, 1, next.IntervalDays, "quality %d should reset interval", quality)
		assert.Less(t, next.EaseFactor, st.EaseFactor)
		assert.Equal(t, now.Add(24*time.Hour), next.NextReviewAt)
	}
}

func TestAdvance_FirstAndSecondReview(t *testing.T) {
	first := srs.Advance(srs.State{EaseFactor: 2.5}, 4, now)
	assert.Equal(t, 1, first.IntervalDays, "first successful review is due in one day")
	assert.Equal(t, 1, first.Repetitions)

	second := srs.Advance(first, 3, now)
	assert.Equal(t, 6, second.IntervalDays, "second successful review is due in six days")
	assert.Equal(t, 2, second.Repetitions)
}

func TestAdvance_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name         string
		quality      int
		repetitions  int
		intervalDays int
		easeFactor   float64
		expected     int
	}{
		{
			name:         "interval 6 with good review multiplies by ease factor",
			quality:      4,
			repetitions:  2,
			intervalDays: 6,
			easeFactor:   2.5,
			expected:     15,
		},
		{
			name:         "interval 10 with perfect review multiplies by raised ease factor",
			quality:      5,
			repetitions:  3,
			intervalDays: 10,
			easeFactor:   2.5,
			expected:     26,
		},
		{
			name:         "hard pass lowers ease before multiplying",
			quality:      3,
			repetitions:  2,
			intervalDays: 6,
			easeFactor:   2.5,
			expected:     14, // 6 * 2.36
		},
		{
			name:         "halves round to even",
			quality:      4,
			repetitions:  2,
			intervalDays: 5,
			easeFactor:   2.5,
			expected:     12, // 12.5
		},
		{
			name:         "interval never drops below one day",
			quality:      3,
			repetitions:  4,
			intervalDays: 0,
			easeFactor:   1.3,
			expected:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := srs.State{Repetitions: tt.repetitions, IntervalDays: tt.intervalDays, EaseFactor: tt.easeFactor}

			next := srs.Advance(st, tt.quality, now)

			assert.Equal(t, tt.expected, next.IntervalDays)
			assert.Equal(t, tt.repetitions+1, next.Repetitions)
		})
	}
}

func TestAdvance_MinEaseFactor(t *testing.T) {
	st := srs.State{Repetitions: 3, IntervalDays: 10, EaseFactor: 1.3}

	qualities := []int{0, 3, 1, 5, 2, 0, 4, 0, 0, 3}
	for _, q := range qualities {
		st = srs.Advance(st, q, now)
		assert.GreaterOrEqual(t, st.EaseFactor, srs.MinEase, "ease factor should not drop below 1.3")
	}
}

func TestAdvance_ZeroEaseUsesDefault(t *testing.T) {
	next := srs.Advance(srs.State{}, 4, now)

	assert.InDelta(t, srs.DefaultEase, next.EaseFactor, 1e-9)
}

func TestApplyReview_Correct(t *testing.T) {
	p := models.WordProgress{
		ProfileID:     1,
		WordID:        2,
		Status:        models.StatusNew,
		Repetitions:   1,
		IntervalDays:  1,
		EaseFactor:    2.5,
		WrongStreak:   3,
		CorrectStreak: 0,
	}

	updated := srs.ApplyReview(p, 5, true, now)

	require.NotNil(t, updated.NextReviewAt)
	require.NotNil(t, updated.LastReviewAt)
	assert.Equal(t, 6, updated.IntervalDays)
	assert.Equal(t, 2, updated.Repetitions)
	assert.Equal(t, 2, updated.Stage, "stage mirrors repetitions")
	assert.Equal(t, 1, updated.CorrectStreak)
	assert.Equal(t, 0, updated.WrongStreak)
	assert.Equal(t, models.StatusLearned, updated.Status)
	assert.Equal(t, now, *updated.LastReviewAt)
	assert.Equal(t, now.Add(6*24*time.Hour), *updated.NextReviewAt)
}

func TestApplyReview_KnownStaysKnown(t *testing.T) {
	p := models.WordProgress{Status: models.StatusKnown, EaseFactor: 2.5}

	updated := srs.ApplyReview(p, 4, true, now)

	assert.Equal(t, models.StatusKnown, updated.Status)
}

func TestApplyReview_Wrong(t *testing.T) {
	p := models.WordProgress{
		Status:        models.StatusNew,
		Repetitions:   4,
		IntervalDays:  20,
		EaseFactor:    2.5,
		CorrectStreak: 5,
	}

	updated := srs.ApplyReview(p, 2, false, now)

	assert.Equal(t, models.StatusNew, updated.Status, "status unchanged on a wrong answer")
	assert.Equal(t, 0, updated.CorrectStreak)
	assert.Equal(t, 1, updated.WrongStreak)
	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, 1, updated.IntervalDays)
}

func TestNewLearned(t *testing.T) {
	p := srs.NewLearned(7, 42, now)

	require.NotNil(t, p.LearnedAt)
	require.NotNil(t, p.NextReviewAt)
	assert.Equal(t, int64(7), p.ProfileID)
	assert.Equal(t, int64(42), p.WordID)
	assert.Equal(t, models.StatusLearned, p.Status)
	assert.Equal(t, 1, p.Repetitions)
	assert.Equal(t, 1, p.IntervalDays)
	assert.Equal(t, 1, p.CorrectStreak)
	assert.InDelta(t, 2.6, p.EaseFactor, 1e-9)
	assert.Equal(t, now.Add(24*time.Hour), *p.NextReviewAt)
}

func TestSeedDue(t *testing.T) {
	p := srs.SeedDue(7, 42, now)

	assert.Equal(t, models.StatusLearned, p.Status)
	assert.Equal(t, 0, p.Repetitions)
	assert.Equal(t, 0, p.IntervalDays)
	assert.True(t, srs.IsDue(p, now))
	assert.False(t, srs.IsDue(models.WordProgress{}, now))
}

func TestReviewEvent(t *testing.T) {
	p := models.WordProgress{ProfileID: 1, WordID: 9}

	assert.Equal(t, models.ResultCorrect, srs.ReviewEvent(p, true, now).Result)
	ev := srs.ReviewEvent(p, false, now)
	assert.Equal(t, models.ResultWrong, ev.Result)
	assert.Equal(t, int64(9), ev.WordID)
	assert.Equal(t, now, ev.CreatedAt)
}
