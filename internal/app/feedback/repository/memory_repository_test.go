package repository

import (
	"context"
	"testing"
	"time"

	"feedbackhub/internal/app/feedback/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedback(product string, rating int) *entity.Feedback {
	return &entity.Feedback{
		ProductID:    product,
		Rating:       rating,
		ReviewText:   "some text",
		CustomerName: "alice",
	}
}

func TestMemoryRepository_Create_AssignsCounterIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := newTestFeedback("p1", 5)
	second := newTestFeedback("p2", 3)

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, first.CreatedAt.Location())
}

func TestMemoryRepository_GetAll_NewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, product := range []string{"p1", "p2", "p3"} {
		require.NoError(t, repo.Create(ctx, newTestFeedback(product, 4)))
		time.Sleep(time.Millisecond)
	}

	all, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p3", all[0].ProductID)
	assert.Equal(t, "p2", all[1].ProductID)
	assert.Equal(t, "p1", all[2].ProductID)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}
}

func TestMemoryRepository_GetAll_Empty(t *testing.T) {
	repo := NewMemoryRepository()

	all, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryRepository_Update_Success(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	fb := newTestFeedback("p1", 2)
	require.NoError(t, repo.Create(ctx, fb))

	rating := 5
	text := "changed my mind"
	err := repo.Update(ctx, fb.ID, entity.FeedbackUpdate{Rating: &rating, ReviewText: &text})

	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].Rating)
	assert.Equal(t, "changed my mind", all[0].ReviewText)
	assert.Equal(t, fb.CreatedAt, all[0].CreatedAt)
}

func TestMemoryRepository_Update_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	rating := 3
	err := repo.Update(context.Background(), "42", entity.FeedbackUpdate{Rating: &rating})

	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}

func TestMemoryRepository_Update_InvalidID(t *testing.T) {
	repo := NewMemoryRepository()

	rating := 3
	err := repo.Update(context.Background(), "not-a-number", entity.FeedbackUpdate{Rating: &rating})

	assert.ErrorIs(t, err, ErrInvalidFeedbackID)
}

func TestMemoryRepository_Delete_Success(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	fb := newTestFeedback("p1", 4)
	require.NoError(t, repo.Create(ctx, fb))

	require.NoError(t, repo.Delete(ctx, fb.ID))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryRepository_Delete_NotFound_KeepsStore(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestFeedback("p1", 4)))

	err := repo.Delete(ctx, "99")

	assert.ErrorIs(t, err, ErrFeedbackNotFound)

	all, getErr := repo.GetAll(ctx)
	require.NoError(t, getErr)
	assert.Len(t, all, 1)
}

func TestMemoryRepository_Delete_InvalidID(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.Delete(context.Background(), "abc")

	assert.ErrorIs(t, err, ErrInvalidFeedbackID)
}

func TestMemoryRepository_ValidateID(t *testing.T) {
	repo := NewMemoryRepository()

	assert.NoError(t, repo.ValidateID("1"))
	assert.ErrorIs(t, repo.ValidateID("abc"), ErrInvalidFeedbackID)
	assert.ErrorIs(t, repo.ValidateID("0"), ErrInvalidFeedbackID)
	assert.ErrorIs(t, repo.ValidateID("-3"), ErrInvalidFeedbackID)
}
