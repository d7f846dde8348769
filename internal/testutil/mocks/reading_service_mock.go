package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockReadingService is a mock implementation of services.ReadingService
type MockReadingService struct {
	mock.Mock
}

func (m *MockReadingService) Preview(ctx context.Context, profileID int64, req models.ReadingRequest) (*models.ReadingPreview, error) {
	args := m.Called(ctx, profileID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingPreview), args.Error(1)
}

func (m *MockReadingService) Flag(ctx context.Context, profileID int64, passageIDs []int64) (int, error) {
	args := m.Called(ctx, profileID, passageIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockReadingService) Corpora(ctx context.Context, profileID int64) ([]models.Corpus, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Corpus), args.Error(1)
}

func (m *MockReadingService) SetCorpusEnabled(ctx context.Context, profileID int64, slug string, enabled bool) error {
	args := m.Called(ctx, profileID, slug, enabled)
	return args.Error(0)
}

func (m *MockReadingService) RefreshIndex(ctx context.Context, lang string) error {
	args := m.Called(ctx, lang)
	return args.Error(0)
}

func (m *MockReadingService) RefreshAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
