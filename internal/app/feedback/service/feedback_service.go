package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"feedbackhub/internal/app/feedback/entity"
	"feedbackhub/internal/app/feedback/infrastructure"
	"feedbackhub/internal/app/feedback/repository"
	"feedbackhub/pkg/logger"
	"feedbackhub/pkg/metrics"
)

var (
	// Business-logic errors handled in the HTTP layer.
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrInvalidFeedbackID = errors.New("invalid feedback id")
)

// FeedbackService coordinates the feedback store, the Kafka producer and the
// admin-overview cache.
type FeedbackService struct {
	repo      repository.FeedbackRepository
	publisher infrastructure.MessagePublisher
	cache     OverviewCache
}

func NewFeedbackService(
	repo repository.FeedbackRepository,
	publisher infrastructure.MessagePublisher,
	cache OverviewCache,
) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
	}
}

// Submit stores a new feedback record and publishes a FEEDBACK_CREATED event.
// The request must already be validated.
func (s *FeedbackService) Submit(ctx context.Context, req *entity.SubmitFeedbackRequest) (*entity.Feedback, error) {
	fb := &entity.Feedback{
		ProductID:    *req.ProductID,
		Rating:       req.Rating.Int(),
		ReviewText:   *req.ReviewText,
		CustomerName: *req.CustomerName,
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	metrics.FeedbackCreated.Inc()
	metrics.FeedbackRating.Observe(float64(fb.Rating))

	event := entity.FeedbackEvent{
		EventType:  "FEEDBACK_CREATED",
		FeedbackID: fb.ID,
		ProductID:  fb.ProductID,
		Rating:     fb.Rating,
		Timestamp:  time.Now(),
	}

	// The record is already stored; event and cache trouble is not critical.
	if err := s.publishFeedbackEvent(ctx, event); err != nil {
		logger.Warn().Err(err).Str("feedback_id", fb.ID).Msg("Failed to publish feedback created event")
	}
	s.invalidateOverview(ctx)

	return fb, nil
}

// List returns every record, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]entity.Feedback, error) {
	feedback, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return feedback, nil
}

// ValidateID rejects ids the active store could never have issued. A
// malformed id is reported before the request body is even considered.
func (s *FeedbackService) ValidateID(id string) error {
	if err := s.repo.ValidateID(id); err != nil {
		return mapRepositoryError(err, "validate")
	}
	return nil
}

// Update applies the validated partial update to the record with the given id.
func (s *FeedbackService) Update(ctx context.Context, id string, req *entity.UpdateFeedbackRequest) error {
	if err := s.repo.Update(ctx, id, req.Fields()); err != nil {
		return mapRepositoryError(err, "update")
	}

	s.invalidateOverview(ctx)

	return nil
}

// Delete removes the record with the given id.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err, "delete")
	}

	s.invalidateOverview(ctx)

	return nil
}

// AdminOverview returns the full ordered list plus aggregate stats, served
// from the Redis cache when possible.
func (s *FeedbackService) AdminOverview(ctx context.Context) (*entity.AdminFeedbackResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetOverview(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read overview cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	feedback, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	overview := &entity.AdminFeedbackResponse{
		Feedback: feedback,
		Stats:    computeStats(feedback),
	}

	if s.cache != nil {
		if err := s.cache.SetOverview(ctx, overview); err != nil {
			logger.Warn().Err(err).Msg("Failed to write overview cache")
		}
	}

	return overview, nil
}

func (s *FeedbackService) publishFeedbackEvent(ctx context.Context, event entity.FeedbackEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback event: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, event.FeedbackID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}

func (s *FeedbackService) invalidateOverview(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOverview(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate overview cache")
	}
}

// computeStats calculates the admin aggregates: record count and mean rating
// rounded to 2 decimal places, 0 when the list is empty.
func computeStats(feedback []entity.Feedback) entity.FeedbackStats {
	total := len(feedback)
	if total == 0 {
		return entity.FeedbackStats{}
	}

	sum := 0
	for _, fb := range feedback {
		sum += fb.Rating
	}

	avg := math.Round(float64(sum)/float64(total)*100) / 100

	return entity.FeedbackStats{
		Total:         total,
		AverageRating: avg,
	}
}

func mapRepositoryError(err error, operation string) error {
	switch {
	case errors.Is(err, repository.ErrFeedbackNotFound):
		return ErrFeedbackNotFound
	case errors.Is(err, repository.ErrInvalidFeedbackID):
		return ErrInvalidFeedbackID
	default:
		return fmt.Errorf("failed to %s feedback: %w", operation, err)
	}
}
