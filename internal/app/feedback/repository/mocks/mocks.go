package mocks

import (
	"context"

	"feedbackhub/internal/app/feedback/entity"

	"github.com/stretchr/testify/mock"
)

// MockFeedbackRepository mocks repository.FeedbackRepository.
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, fb *entity.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetAll(ctx context.Context) ([]entity.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ValidateID(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, id string, fields entity.FeedbackUpdate) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOverviewCache mocks service.OverviewCache.
type MockOverviewCache struct {
	mock.Mock
}

func (m *MockOverviewCache) GetOverview(ctx context.Context) (*entity.AdminFeedbackResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AdminFeedbackResponse), args.Error(1)
}

func (m *MockOverviewCache) SetOverview(ctx context.Context, overview *entity.AdminFeedbackResponse) error {
	args := m.Called(ctx, overview)
	return args.Error(0)
}

func (m *MockOverviewCache) InvalidateOverview(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagePublisher mocks infrastructure.MessagePublisher.
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
