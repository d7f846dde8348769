package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockStudyService is a mock implementation of services.StudyService
type MockStudyService struct {
	mock.Mock
}

func (m *MockStudyService) StartLearn(ctx context.Context, profileID int64) (*models.LearnBatch, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnBatch), args.Error(1)
}

func (m *MockStudyService) SubmitLearn(ctx context.Context, profileID int64, sub models.Submission) (*models.LearnOutcome, error) {
	args := m.Called(ctx, profileID, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnOutcome), args.Error(1)
}

func (m *MockStudyService) StartReview(ctx context.Context, profileID int64) (*models.ReviewBatch, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewBatch), args.Error(1)
}

func (m *MockStudyService) SubmitReview(ctx context.Context, profileID int64, sub models.Submission) (*models.ReviewOutcome, error) {
	args := m.Called(ctx, profileID, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewOutcome), args.Error(1)
}

func (m *MockStudyService) SeedReview(ctx context.Context, profileID int64, limit int) (int, error) {
	args := m.Called(ctx, profileID, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockStudyService) AddCustomWord(ctx context.Context, profileID int64, lemma, translation string) error {
	args := m.Called(ctx, profileID, lemma, translation)
	return args.Error(0)
}
