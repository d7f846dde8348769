package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, profileID int64, wordIDs []int64) (map[int64]models.WordProgress, error) {
	args := m.Called(ctx, profileID, wordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) Due(ctx context.Context, profileID int64, now time.Time, limit int) ([]models.DueWord, error) {
	args := m.Called(ctx, profileID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueWord), args.Error(1)
}

func (m *MockProgressRepository) InsertNew(ctx context.Context, rows []models.WordProgress) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) RecentlyLearned(ctx context.Context, profileID int64, since time.Time, limit int) ([]int64, error) {
	args := m.Called(ctx, profileID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockProgressRepository) SaveReviews(ctx context.Context, rows []models.WordProgress, events []models.ReviewEvent) error {
	args := m.Called(ctx, rows, events)
	return args.Error(0)
}
