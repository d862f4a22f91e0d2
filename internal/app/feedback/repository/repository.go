package repository

import (
	"context"
	"errors"

	"feedbackhub/internal/app/feedback/entity"
)

var (
	// ErrFeedbackNotFound is returned when no record matches the given id.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrInvalidFeedbackID is returned when the id cannot be parsed into the
	// store's identifier type. Handlers map it to 400, not 404.
	ErrInvalidFeedbackID = errors.New("invalid feedback id")
)

// FeedbackRepository is the storage contract shared by the MongoDB and
// in-memory implementations. Create assigns the record's ID and CreatedAt.
// GetAll returns records ordered by created_at descending, ties broken by
// insertion order. ValidateID checks only the id's shape, without touching
// the store, so callers can reject a malformed id before reading a body.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *entity.Feedback) error
	GetAll(ctx context.Context) ([]entity.Feedback, error)
	Update(ctx context.Context, id string, fields entity.FeedbackUpdate) error
	Delete(ctx context.Context, id string) error
	ValidateID(id string) error
}
