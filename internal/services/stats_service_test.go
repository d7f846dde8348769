package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/testutil/mocks"
)

type statsFixture struct {
	profiles *mocks.MockProfileRepository
	catalog  *mocks.MockCatalogRepository
	stats    *mocks.MockStatsRepository
	svc      *statsService
	clock    time.Time
}

func newStatsFixture(t *testing.T) *statsFixture {
	f := &statsFixture{
		profiles: new(mocks.MockProfileRepository),
		catalog:  new(mocks.MockCatalogRepository),
		stats:    new(mocks.MockStatsRepository),
		clock:    studyNow,
	}
	f.svc = NewStatsService(f.profiles, f.catalog, f.stats).(*statsService)
	f.svc.now = func() time.Time { return f.clock }

	f.profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{
		ID: 1, NativeLang: "ru", TargetLang: "en",
	}, nil).Maybe()
	return f
}

func TestWeakWords_FillsTranslations(t *testing.T) {
	f := newStatsFixture(t)
	f.stats.On("WeakWords", mock.Anything, int64(1), "ru", 5).Return([]models.WeakWord{
		{WordID: 7, Word: "дом", WrongCount: 3, CorrectCount: 1, Accuracy: 0.25},
		{WordID: 8, Word: "кот", WrongCount: 1},
	}, 2, nil)
	f.catalog.On("Translations", mock.Anything, int64(1), []int64{7, 8}, "en").
		Return(translationSet(map[int64][]string{7: {"house", " home", "house"}}), nil)

	res, err := f.svc.WeakWords(context.Background(), 1, 5, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, []string{"home", "house"}, res.Items[0].Translations)
	assert.Empty(t, res.Items[1].Translations)
	assert.Equal(t, 0.25, res.Items[0].Accuracy)
}

func TestWeakWords_InvalidLimit(t *testing.T) {
	f := newStatsFixture(t)

	for _, limit := range []int{0, -1, 101} {
		_, err := f.svc.WeakWords(context.Background(), 1, limit, false)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), "limit %d", limit)
	}
	f.stats.AssertNotCalled(t, "WeakWords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWeakWords_CachesDefaultLimit(t *testing.T) {
	f := newStatsFixture(t)
	f.stats.On("WeakWords", mock.Anything, int64(1), "ru", DefaultWeakWordsLimit).
		Return([]models.WeakWord{{WordID: 7, Word: "дом", WrongCount: 1}}, 1, nil)
	f.catalog.On("Translations", mock.Anything, int64(1), []int64{7}, "en").
		Return(translationSet(map[int64][]string{7: {"house"}}), nil)
	ctx := context.Background()

	first, err := f.svc.WeakWords(ctx, 1, DefaultWeakWordsLimit, false)
	require.NoError(t, err)
	second, err := f.svc.WeakWords(ctx, 1, DefaultWeakWordsLimit, false)
	require.NoError(t, err)
	assert.Same(t, first, second)
	f.stats.AssertNumberOfCalls(t, "WeakWords", 1)

	_, err = f.svc.WeakWords(ctx, 1, DefaultWeakWordsLimit, true)
	require.NoError(t, err)
	f.stats.AssertNumberOfCalls(t, "WeakWords", 2)

	f.clock = f.clock.Add(weakWordsTTL + time.Second)
	_, err = f.svc.WeakWords(ctx, 1, DefaultWeakWordsLimit, false)
	require.NoError(t, err)
	f.stats.AssertNumberOfCalls(t, "WeakWords", 3)
}

func TestWeakWords_RepositoryError(t *testing.T) {
	f := newStatsFixture(t)
	f.stats.On("WeakWords", mock.Anything, int64(1), "ru", 5).Return(nil, 0, stderrors.New("disk"))

	_, err := f.svc.WeakWords(context.Background(), 1, 5, false)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}

func TestReviewPlan(t *testing.T) {
	f := newStatsFixture(t)
	f.stats.On("ReviewPlan", mock.Anything, int64(1), "ru", 0).Return([]models.ReviewPlanItem{
		{WordID: 3, Word: "три", NextReviewAt: studyNow, Stage: 2},
	}, 1, nil)
	f.catalog.On("Translations", mock.Anything, int64(1), []int64{3}, "en").
		Return(translationSet(map[int64][]string{3: {"three"}}), nil)

	plan, err := f.svc.ReviewPlan(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Total)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, []string{"three"}, plan.Items[0].Translations)

	_, err = f.svc.ReviewPlan(context.Background(), 1, 5001)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestReviewPlan_UnknownProfile(t *testing.T) {
	f := newStatsFixture(t)
	f.profiles.On("Get", mock.Anything, int64(2)).Return(nil, nil)

	_, err := f.svc.ReviewPlan(context.Background(), 2, 10)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
