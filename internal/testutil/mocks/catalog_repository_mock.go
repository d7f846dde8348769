package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockCatalogRepository is a mock implementation of repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) UpsertWord(ctx context.Context, w models.Word) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) AddTranslation(ctx context.Context, wordID int64, targetLang, text string) error {
	args := m.Called(ctx, wordID, targetLang, text)
	return args.Error(0)
}

func (m *MockCatalogRepository) AddCustomWord(ctx context.Context, profileID, wordID int64, targetLang, translation string) error {
	args := m.Called(ctx, profileID, wordID, targetLang, translation)
	return args.Error(0)
}

func (m *MockCatalogRepository) Words(ctx context.Context, ids []int64) (map[int64]models.Word, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.Word), args.Error(1)
}

func (m *MockCatalogRepository) Translations(ctx context.Context, profileID int64, wordIDs []int64, targetLang string) (models.TranslationSet, error) {
	args := m.Called(ctx, profileID, wordIDs, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.TranslationSet), args.Error(1)
}

func (m *MockCatalogRepository) CustomWordsToLearn(ctx context.Context, profileID int64, lang, targetLang string, limit int) ([]models.Word, error) {
	args := m.Called(ctx, profileID, lang, targetLang, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockCatalogRepository) CatalogWordsToLearn(ctx context.Context, profileID int64, lang, targetLang string, limit int) ([]models.Word, error) {
	args := m.Called(ctx, profileID, lang, targetLang, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}
