package service

import (
	"context"

	"feedbackhub/internal/app/feedback/entity"
)

// OverviewCache is the admin-overview cache contract, implemented by the
// Redis client. The cache is optional; a nil OverviewCache disables it.
type OverviewCache interface {
	GetOverview(ctx context.Context) (*entity.AdminFeedbackResponse, error)
	SetOverview(ctx context.Context, overview *entity.AdminFeedbackResponse) error
	InvalidateOverview(ctx context.Context) error
}
