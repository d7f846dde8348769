package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/reading"
	"github.com/vytor/wordflash/internal/testutil/mocks"
)

type readingFixture struct {
	profiles *mocks.MockProfileRepository
	catalog  *mocks.MockCatalogRepository
	progress *mocks.MockProgressRepository
	reading  *mocks.MockReadingRepository
	svc      *readingService
}

func newReadingFixture(t *testing.T) *readingFixture {
	f := &readingFixture{
		profiles: new(mocks.MockProfileRepository),
		catalog:  new(mocks.MockCatalogRepository),
		progress: new(mocks.MockProgressRepository),
		reading:  new(mocks.MockReadingRepository),
	}
	f.svc = NewReadingService(f.profiles, f.catalog, f.progress, f.reading, ReadingConfig{}).(*readingService)
	f.svc.now = func() time.Time { return studyNow }

	f.profiles.On("Get", mock.Anything, int64(1)).Return(&models.Profile{
		ID: 1, NativeLang: "ru", TargetLang: "en",
	}, nil).Maybe()
	return f
}

func tokenSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func samplePassages() []models.Passage {
	return []models.Passage{
		{ID: 1, SourceID: 10, Position: 1, WordCount: 4, Text: "The house is big.", Tokens: tokenSet("the", "house", "is", "big")},
		{ID: 2, SourceID: 10, Position: 2, WordCount: 3, Text: "A cat sat.", Tokens: tokenSet("a", "cat", "sat")},
		{ID: 3, SourceID: 10, Position: 3, WordCount: 2, Text: "Кот house", Tokens: tokenSet("кот", "house")},
	}
}

func (f *readingFixture) withLearned(ids []int64, set models.TranslationSet) {
	f.progress.On("RecentlyLearned", mock.Anything, int64(1), studyNow.AddDate(0, 0, -3), reading.MaxRecentWords).Return(ids, nil)
	if len(ids) > 0 {
		f.catalog.On("Translations", mock.Anything, int64(1), ids, "en").Return(set, nil)
	}
}

func (f *readingFixture) withSources(blocked []int64) {
	f.reading.On("EnabledCorpora", mock.Anything, int64(1)).Return([]int64{}, nil)
	f.reading.On("Sources", mock.Anything, "en", []int64{}).Return([]models.ReadingSource{
		{ID: 10, Slug: "tale", Title: "Tale", Lang: "en", CorpusName: "Classics"},
	}, nil)
	f.reading.On("BlockedPassages", mock.Anything, int64(1)).Return(blocked, nil)
	f.reading.On("Passages", mock.Anything, "en").Return(samplePassages(), nil)
}

func TestPreview_BuildsBundleInReadingOrder(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{1, 2}, translationSet(map[int64][]string{1: {"house"}, 2: {"cat"}}))
	f.withSources(nil)

	preview, err := f.svc.Preview(context.Background(), 1, models.ReadingRequest{TargetWords: 2})
	require.NoError(t, err)

	assert.Empty(t, preview.Message)
	assert.Equal(t, []int64{1, 2}, preview.PassageIDs)
	assert.Equal(t, "The house is big.\n\nA cat sat.", preview.Text)
	assert.Equal(t, 7, preview.WordCount)
	assert.Equal(t, 2, preview.TargetWords)
	assert.Equal(t, 2, preview.Hits)
	assert.Equal(t, 1.0, preview.Coverage)
	assert.Equal(t, []string{"cat", "house"}, preview.HighlightTokens)
	assert.Equal(t, "Tale", preview.Title)
	require.NotNil(t, preview.SourceTitle)
	assert.Equal(t, "Tale", *preview.SourceTitle)
	require.NotNil(t, preview.CorpusName)
	assert.Equal(t, "Classics", *preview.CorpusName)
	f.progress.AssertExpectations(t)
	f.reading.AssertExpectations(t)
}

func TestPreview_NoRecentWords(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{}, nil)
	f.withSources(nil)

	preview, err := f.svc.Preview(context.Background(), 1, models.ReadingRequest{TargetWords: 500})
	require.NoError(t, err)

	assert.Equal(t, reading.MsgNoTargets, preview.Message)
	assert.Equal(t, MaxReadingTargetWords, preview.TargetWordsRequested)
	assert.Empty(t, preview.PassageIDs)
	f.catalog.AssertNotCalled(t, "Translations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreview_BlockedPassageExcluded(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{1, 2}, translationSet(map[int64][]string{1: {"house"}, 2: {"cat"}}))
	f.withSources([]int64{2})

	preview, err := f.svc.Preview(context.Background(), 1, models.ReadingRequest{TargetWords: 2})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, preview.PassageIDs)
	assert.Equal(t, 0.5, preview.Coverage)
	assert.Equal(t, []string{"house"}, preview.HighlightTokens)
}

func TestPreview_NoMatchingPassages(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{1}, translationSet(map[int64][]string{1: {"giraffe"}}))
	f.withSources(nil)

	preview, err := f.svc.Preview(context.Background(), 1, models.ReadingRequest{TargetWords: 5})
	require.NoError(t, err)
	assert.Equal(t, reading.MsgNoPassages, preview.Message)
	assert.Equal(t, 1, preview.TargetWords)
}

func TestPreview_FallsBackToAllSources(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{1}, translationSet(map[int64][]string{1: {"house"}}))
	f.reading.On("EnabledCorpora", mock.Anything, int64(1)).Return([]int64{5}, nil)
	f.reading.On("Sources", mock.Anything, "en", []int64{5}).Return([]models.ReadingSource{}, nil)
	f.reading.On("Sources", mock.Anything, "en", []int64(nil)).Return([]models.ReadingSource{{ID: 10, Title: "Tale", Lang: "en"}}, nil)
	f.reading.On("BlockedPassages", mock.Anything, int64(1)).Return([]int64{}, nil)
	f.reading.On("Passages", mock.Anything, "en").Return(samplePassages(), nil)

	preview, err := f.svc.Preview(context.Background(), 1, models.ReadingRequest{TargetWords: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, preview.PassageIDs)
	assert.Nil(t, preview.CorpusName)
	f.reading.AssertExpectations(t)
}

func TestPreview_NoSources(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{1}, translationSet(map[int64][]string{1: {"house"}}))
	f.reading.On("EnabledCorpora", mock.Anything, int64(1)).Return([]int64{}, nil)
	f.reading.On("Sources", mock.Anything, "en", []int64{}).Return([]models.ReadingSource{}, nil)
	f.reading.On("BlockedPassages", mock.Anything, int64(1)).Return([]int64{}, nil)
	f.reading.On("Passages", mock.Anything, "en").Return([]models.Passage{}, nil)

	preview, err := f.svc.Preview(context.Background(), 1, models.ReadingRequest{TargetWords: 1})
	require.NoError(t, err)
	assert.Equal(t, reading.MsgNoSources, preview.Message)
}

func TestPreview_IndexIsCached(t *testing.T) {
	f := newReadingFixture(t)
	f.withLearned([]int64{1}, translationSet(map[int64][]string{1: {"house"}}))
	f.withSources(nil)
	ctx := context.Background()

	_, err := f.svc.Preview(ctx, 1, models.ReadingRequest{TargetWords: 1})
	require.NoError(t, err)
	_, err = f.svc.Preview(ctx, 1, models.ReadingRequest{TargetWords: 1, Variant: 1})
	require.NoError(t, err)

	f.reading.AssertNumberOfCalls(t, "Passages", 1)

	require.NoError(t, f.svc.RefreshIndex(ctx, "en"))
	f.reading.AssertNumberOfCalls(t, "Passages", 2)
}

func TestIndexDropsWrongScriptPassages(t *testing.T) {
	f := newReadingFixture(t)
	f.reading.On("Passages", mock.Anything, "en").Return(samplePassages(), nil)

	idx, err := f.svc.index(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	_, ok := idx.Passage(3)
	assert.False(t, ok)
}

func TestFlag_DeduplicatesIDs(t *testing.T) {
	f := newReadingFixture(t)
	ctx := context.Background()
	f.reading.On("BlockPassages", ctx, int64(1), []int64{4, 9}).Return(2, nil)

	n, err := f.svc.Flag(ctx, 1, []int64{4, 9, 4, 0, -3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.svc.Flag(ctx, 1, []int64{0})
	require.NoError(t, err)
	assert.Zero(t, n)
	f.reading.AssertNumberOfCalls(t, "BlockPassages", 1)
}

func TestSetCorpusEnabled(t *testing.T) {
	f := newReadingFixture(t)
	ctx := context.Background()
	f.reading.On("Corpora", ctx, int64(1)).Return([]models.Corpus{
		{ID: 7, Slug: "classics", Name: "Classics"},
	}, nil)
	f.reading.On("SetCorpusEnabled", ctx, int64(1), int64(7), true).Return(nil)

	require.NoError(t, f.svc.SetCorpusEnabled(ctx, 1, "classics", true))

	err := f.svc.SetCorpusEnabled(ctx, 1, "news", true)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	f.reading.AssertNumberOfCalls(t, "SetCorpusEnabled", 1)
}
