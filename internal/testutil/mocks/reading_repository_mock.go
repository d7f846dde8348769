package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockReadingRepository is a mock implementation of repository.ReadingRepository
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) UpsertCorpus(ctx context.Context, slug, name string) (int64, error) {
	args := m.Called(ctx, slug, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReadingRepository) SetCorpusEnabled(ctx context.Context, profileID, corpusID int64, enabled bool) error {
	args := m.Called(ctx, profileID, corpusID, enabled)
	return args.Error(0)
}

func (m *MockReadingRepository) Corpora(ctx context.Context, profileID int64) ([]models.Corpus, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Corpus), args.Error(1)
}

func (m *MockReadingRepository) EnabledCorpora(ctx context.Context, profileID int64) ([]int64, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReadingRepository) SourceBySlug(ctx context.Context, slug string) (*models.ReadingSource, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingSource), args.Error(1)
}

func (m *MockReadingRepository) DeleteSource(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReadingRepository) InsertSource(ctx context.Context, src models.ReadingSource, passages []models.NewPassage) (int64, error) {
	args := m.Called(ctx, src, passages)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReadingRepository) Sources(ctx context.Context, lang string, corpusIDs []int64) ([]models.ReadingSource, error) {
	args := m.Called(ctx, lang, corpusIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingSource), args.Error(1)
}

func (m *MockReadingRepository) Passages(ctx context.Context, lang string) ([]models.Passage, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Passage), args.Error(1)
}

func (m *MockReadingRepository) Languages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReadingRepository) BlockedPassages(ctx context.Context, profileID int64) ([]int64, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReadingRepository) BlockPassages(ctx context.Context, profileID int64, passageIDs []int64) (int, error) {
	args := m.Called(ctx, profileID, passageIDs)
	return args.Int(0), args.Error(1)
}
