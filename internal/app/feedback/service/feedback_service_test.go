package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"feedbackhub/internal/app/feedback/entity"
	"feedbackhub/internal/app/feedback/repository"
	"feedbackhub/internal/app/feedback/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubmitRequest(t *testing.T, body string) *entity.SubmitFeedbackRequest {
	t.Helper()
	var req entity.SubmitFeedbackRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())
	return &req
}

func newUpdateRequest(t *testing.T, body string) *entity.UpdateFeedbackRequest {
	t.Helper()
	var req entity.UpdateFeedbackRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())
	return &req
}

// ==================== Submit Tests ====================

func TestSubmit_Success(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	req := newSubmitRequest(t, `{"product_id":"p1","rating":5,"review_text":"great","customer_name":"alice"}`)

	repo.On("Create", ctx, mock.AnythingOfType("*entity.Feedback")).Return(nil).Run(func(args mock.Arguments) {
		fb := args.Get(1).(*entity.Feedback)
		fb.ID = "507f1f77bcf86cd799439011"
		fb.CreatedAt = time.Now().UTC()
	})
	publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	fb, err := svc.Submit(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.NotEmpty(t, fb.ID)
	assert.Equal(t, "p1", fb.ProductID)
	assert.Equal(t, 5, fb.Rating)

	// The published event carries the new record's identity
	require.Len(t, publisher.Messages, 1)
	var event entity.FeedbackEvent
	require.NoError(t, json.Unmarshal(publisher.Messages[0], &event))
	assert.Equal(t, "FEEDBACK_CREATED", event.EventType)
	assert.Equal(t, fb.ID, event.FeedbackID)
	assert.Equal(t, 5, event.Rating)
}

func TestSubmit_RepoError(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	req := newSubmitRequest(t, `{"product_id":"p1","rating":4,"review_text":"good","customer_name":"bob"}`)

	repo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	fb, err := svc.Submit(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, fb)
	assert.Empty(t, publisher.Messages)
}

func TestSubmit_KafkaErrorIgnored(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	req := newSubmitRequest(t, `{"product_id":"p1","rating":3,"review_text":"ok","customer_name":"carol"}`)

	repo.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Feedback).ID = "1"
	})
	publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	fb, err := svc.Submit(ctx, req)

	require.NoError(t, err)
	assert.NotNil(t, fb)
}

func TestSubmit_InvalidatesCache(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	cache := new(mocks.MockOverviewCache)
	svc := NewFeedbackService(repo, publisher, cache)

	ctx := context.Background()
	req := newSubmitRequest(t, `{"product_id":"p1","rating":5,"review_text":"great","customer_name":"alice"}`)

	repo.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Feedback).ID = "1"
	})
	publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)
	cache.On("InvalidateOverview", ctx).Return(nil)

	_, err := svc.Submit(ctx, req)

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

// ==================== Update / Delete Tests ====================

func TestUpdate_NotFound(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	req := newUpdateRequest(t, `{"rating":3}`)

	repo.On("Update", ctx, "507f1f77bcf86cd799439011", mock.Anything).Return(repository.ErrFeedbackNotFound)

	err := svc.Update(ctx, "507f1f77bcf86cd799439011", req)

	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}

func TestUpdate_InvalidID(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	req := newUpdateRequest(t, `{"rating":3}`)

	repo.On("Update", ctx, "abc", mock.Anything).Return(repository.ErrInvalidFeedbackID)

	err := svc.Update(ctx, "abc", req)

	assert.ErrorIs(t, err, ErrInvalidFeedbackID)
}

func TestValidateID_MapsStoreError(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	repo.On("ValidateID", "not-an-id").Return(repository.ErrInvalidFeedbackID)
	repo.On("ValidateID", "507f1f77bcf86cd799439011").Return(nil)

	assert.ErrorIs(t, svc.ValidateID("not-an-id"), ErrInvalidFeedbackID)
	assert.NoError(t, svc.ValidateID("507f1f77bcf86cd799439011"))
}

func TestDelete_Success_InvalidatesCache(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	cache := new(mocks.MockOverviewCache)
	svc := NewFeedbackService(repo, publisher, cache)

	ctx := context.Background()

	repo.On("Delete", ctx, "1").Return(nil)
	cache.On("InvalidateOverview", ctx).Return(nil)

	err := svc.Delete(ctx, "1")

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()

	repo.On("Delete", ctx, "42").Return(repository.ErrFeedbackNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "42"), ErrFeedbackNotFound)
}

// ==================== Admin Overview Tests ====================

func TestAdminOverview_ComputesStats(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	feedback := []entity.Feedback{
		{ID: "3", Rating: 5},
		{ID: "2", Rating: 4},
		{ID: "1", Rating: 4},
	}

	repo.On("GetAll", ctx).Return(feedback, nil)

	overview, err := svc.AdminOverview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, overview.Stats.Total)
	// mean of 5,4,4 = 4.333... rounded to 2 decimals
	assert.Equal(t, 4.33, overview.Stats.AverageRating)
	assert.Len(t, overview.Feedback, 3)
}

func TestAdminOverview_EmptyStore(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	repo.On("GetAll", ctx).Return([]entity.Feedback{}, nil)

	overview, err := svc.AdminOverview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, overview.Stats.Total)
	assert.Equal(t, 0.0, overview.Stats.AverageRating)
}

func TestAdminOverview_CacheHitSkipsStore(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	cache := new(mocks.MockOverviewCache)
	svc := NewFeedbackService(repo, publisher, cache)

	ctx := context.Background()
	cached := &entity.AdminFeedbackResponse{
		Feedback: []entity.Feedback{{ID: "1", Rating: 5}},
		Stats:    entity.FeedbackStats{Total: 1, AverageRating: 5},
	}

	cache.On("GetOverview", ctx).Return(cached, nil)

	overview, err := svc.AdminOverview(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, overview)
	repo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestAdminOverview_CacheMissFillsCache(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	cache := new(mocks.MockOverviewCache)
	svc := NewFeedbackService(repo, publisher, cache)

	ctx := context.Background()
	feedback := []entity.Feedback{{ID: "1", Rating: 4}}

	cache.On("GetOverview", ctx).Return(nil, nil)
	repo.On("GetAll", ctx).Return(feedback, nil)
	cache.On("SetOverview", ctx, mock.AnythingOfType("*entity.AdminFeedbackResponse")).Return(nil)

	overview, err := svc.AdminOverview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, overview.Stats.Total)
	assert.Equal(t, 4.0, overview.Stats.AverageRating)
	cache.AssertExpectations(t)
}

func TestAdminOverview_CacheErrorFallsThrough(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	cache := new(mocks.MockOverviewCache)
	svc := NewFeedbackService(repo, publisher, cache)

	ctx := context.Background()

	cache.On("GetOverview", ctx).Return(nil, errors.New("redis down"))
	repo.On("GetAll", ctx).Return([]entity.Feedback{}, nil)
	cache.On("SetOverview", ctx, mock.Anything).Return(errors.New("redis down"))

	overview, err := svc.AdminOverview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, overview.Stats.Total)
}

// ==================== List Tests ====================

func TestList_Success(t *testing.T) {
	repo := new(mocks.MockFeedbackRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	svc := NewFeedbackService(repo, publisher, nil)

	ctx := context.Background()
	feedback := []entity.Feedback{{ID: "2", Rating: 5}, {ID: "1", Rating: 1}}

	repo.On("GetAll", ctx).Return(feedback, nil)

	result, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, feedback, result)
}
