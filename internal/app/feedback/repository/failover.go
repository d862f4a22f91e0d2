package repository

import (
	"context"
	"errors"
	"sync/atomic"

	"feedbackhub/internal/app/feedback/entity"
	"feedbackhub/pkg/logger"
	"feedbackhub/pkg/metrics"
)

// FailoverRepository routes every operation to the primary (MongoDB) store
// until a storage error degrades it to the in-memory fallback. The switch is
// a single explicit decision, not a silent per-call retry: once degraded, all
// traffic stays on the fallback until the health checker restores the
// primary. The two stores are never synchronized, so records written while
// degraded are invisible to the primary and vice versa.
type FailoverRepository struct {
	primary  FeedbackRepository
	fallback FeedbackRepository
	degraded atomic.Bool
}

func NewFailoverRepository(primary, fallback FeedbackRepository) *FailoverRepository {
	return &FailoverRepository{
		primary:  primary,
		fallback: fallback,
	}
}

// Degraded reports whether traffic is currently served by the fallback store.
func (r *FailoverRepository) Degraded() bool {
	return r.degraded.Load()
}

// MarkDegraded switches all traffic to the fallback store.
func (r *FailoverRepository) MarkDegraded() {
	if r.degraded.CompareAndSwap(false, true) {
		metrics.StoreDegraded.Set(1)
		metrics.StoreFailovers.Inc()
		logger.Error().Msg("Primary feedback store degraded, serving from in-memory fallback")
	}
}

// Restore switches traffic back to the primary store.
func (r *FailoverRepository) Restore() {
	if r.degraded.CompareAndSwap(true, false) {
		metrics.StoreDegraded.Set(0)
		logger.Info().Msg("Primary feedback store restored")
	}
}

func (r *FailoverRepository) Create(ctx context.Context, fb *entity.Feedback) error {
	if r.degraded.Load() {
		return r.fallback.Create(ctx, fb)
	}

	err := r.primary.Create(ctx, fb)
	if err == nil || isDomainError(err) {
		return err
	}

	r.failover("insert", err)
	return r.fallback.Create(ctx, fb)
}

func (r *FailoverRepository) GetAll(ctx context.Context) ([]entity.Feedback, error) {
	if r.degraded.Load() {
		return r.fallback.GetAll(ctx)
	}

	feedback, err := r.primary.GetAll(ctx)
	if err == nil {
		return feedback, nil
	}

	r.failover("list", err)
	return r.fallback.GetAll(ctx)
}

// ValidateID delegates to the store currently serving traffic: id formats
// differ between the primary and the fallback.
func (r *FailoverRepository) ValidateID(id string) error {
	if r.degraded.Load() {
		return r.fallback.ValidateID(id)
	}
	return r.primary.ValidateID(id)
}

func (r *FailoverRepository) Update(ctx context.Context, id string, fields entity.FeedbackUpdate) error {
	if r.degraded.Load() {
		return r.fallback.Update(ctx, id, fields)
	}

	err := r.primary.Update(ctx, id, fields)
	if err == nil || isDomainError(err) {
		return err
	}

	r.failover("update", err)
	return r.fallback.Update(ctx, id, fields)
}

func (r *FailoverRepository) Delete(ctx context.Context, id string) error {
	if r.degraded.Load() {
		return r.fallback.Delete(ctx, id)
	}

	err := r.primary.Delete(ctx, id)
	if err == nil || isDomainError(err) {
		return err
	}

	r.failover("delete", err)
	return r.fallback.Delete(ctx, id)
}

func (r *FailoverRepository) failover(operation string, err error) {
	metrics.StoreErrors.WithLabelValues(operation).Inc()
	logger.Error().Err(err).Str("operation", operation).Msg("Primary feedback store operation failed")
	r.MarkDegraded()
}

// isDomainError distinguishes not-found/bad-id results from storage failures.
// Only storage failures trigger a failover.
func isDomainError(err error) bool {
	return errors.Is(err, ErrFeedbackNotFound) || errors.Is(err, ErrInvalidFeedbackID)
}
