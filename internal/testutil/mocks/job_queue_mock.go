package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueTextImport(in models.TextImport) error {
	args := m.Called(in)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueIndexRefresh(lang string) error {
	args := m.Called(lang)
	return args.Error(0)
}
