package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) WeakWords(ctx context.Context, profileID int64, limit int, refresh bool) (*models.WeakWords, error) {
	args := m.Called(ctx, profileID, limit, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeakWords), args.Error(1)
}

func (m *MockStatsService) ReviewPlan(ctx context.Context, profileID int64, limit int) (*models.ReviewPlan, error) {
	args := m.Called(ctx, profileID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewPlan), args.Error(1)
}
