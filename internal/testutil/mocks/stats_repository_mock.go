package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) WeakWords(ctx context.Context, profileID int64, lang string, limit int) ([]models.WeakWord, int, error) {
	args := m.Called(ctx, profileID, lang, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.WeakWord), args.Int(1), args.Error(2)
}

func (m *MockStatsRepository) ReviewPlan(ctx context.Context, profileID int64, lang string, limit int) ([]models.ReviewPlanItem, int, error) {
	args := m.Called(ctx, profileID, lang, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.ReviewPlanItem), args.Int(1), args.Error(2)
}
