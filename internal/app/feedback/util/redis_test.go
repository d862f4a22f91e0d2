package util

import (
	"context"
	"testing"
	"time"

	"feedbackhub/internal/app/feedback/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client, err = NewRedisClient(s.miniRedis.Addr(), "", 0, 30*time.Second)
	require.NoError(s.T(), err)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisClientTestSuite) testOverview() *entity.AdminFeedbackResponse {
	return &entity.AdminFeedbackResponse{
		Feedback: []entity.Feedback{
			{ID: "2", ProductID: "p2", Rating: 5, ReviewText: "great", CustomerName: "alice", CreatedAt: time.Now().UTC().Truncate(time.Second)},
			{ID: "1", ProductID: "p1", Rating: 4, ReviewText: "good", CustomerName: "bob", CreatedAt: time.Now().UTC().Truncate(time.Second)},
		},
		Stats: entity.FeedbackStats{Total: 2, AverageRating: 4.5},
	}
}

func (s *RedisClientTestSuite) TestSetAndGetOverview() {
	ctx := context.Background()
	overview := s.testOverview()

	require.NoError(s.T(), s.client.SetOverview(ctx, overview))

	got, err := s.client.GetOverview(ctx)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), got)
	assert.Equal(s.T(), overview.Stats, got.Stats)
	assert.Len(s.T(), got.Feedback, 2)
	assert.Equal(s.T(), "2", got.Feedback[0].ID)
}

func (s *RedisClientTestSuite) TestGetOverview_Miss() {
	got, err := s.client.GetOverview(context.Background())

	require.NoError(s.T(), err)
	assert.Nil(s.T(), got)
}

func (s *RedisClientTestSuite) TestInvalidateOverview() {
	ctx := context.Background()

	require.NoError(s.T(), s.client.SetOverview(ctx, s.testOverview()))
	require.NoError(s.T(), s.client.InvalidateOverview(ctx))

	got, err := s.client.GetOverview(ctx)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got)
}

func (s *RedisClientTestSuite) TestOverviewExpires() {
	ctx := context.Background()

	require.NoError(s.T(), s.client.SetOverview(ctx, s.testOverview()))

	s.miniRedis.FastForward(time.Minute)

	got, err := s.client.GetOverview(ctx)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got)
}
