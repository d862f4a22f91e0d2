package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"feedbackhub/internal/app/feedback/entity"
	"feedbackhub/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	overviewCacheKey = "feedback:admin:overview"
	cacheKeyPrefix   = "feedback"
	serviceName      = "feedback-service"
)

// RedisClient caches the admin overview (full list + stats). The cache is
// optional; callers tolerate a nil *RedisClient.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int, ttl time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, ttl: ttl}, nil
}

func (r *RedisClient) SetOverview(ctx context.Context, overview *entity.AdminFeedbackResponse) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("failed to marshal overview: %w", err)
	}

	if err := r.client.Set(ctx, overviewCacheKey, data, r.ttl).Err(); err != nil {
		metrics.RedisErrors.WithLabelValues(serviceName, "set").Inc()
		return fmt.Errorf("failed to set overview in cache: %w", err)
	}

	return nil
}

// GetOverview returns the cached overview, or nil on a miss.
func (r *RedisClient) GetOverview(ctx context.Context) (*entity.AdminFeedbackResponse, error) {
	data, err := r.client.Get(ctx, overviewCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.CacheMisses.WithLabelValues(serviceName, cacheKeyPrefix).Inc()
			return nil, nil
		}
		metrics.RedisErrors.WithLabelValues(serviceName, "get").Inc()
		return nil, fmt.Errorf("failed to get overview from cache: %w", err)
	}

	var overview entity.AdminFeedbackResponse
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, fmt.Errorf("failed to unmarshal overview: %w", err)
	}

	metrics.CacheHits.WithLabelValues(serviceName, cacheKeyPrefix).Inc()
	return &overview, nil
}

// InvalidateOverview drops the cached overview after a write.
func (r *RedisClient) InvalidateOverview(ctx context.Context) error {
	if err := r.client.Del(ctx, overviewCacheKey).Err(); err != nil {
		metrics.RedisErrors.WithLabelValues(serviceName, "del").Inc()
		return fmt.Errorf("failed to delete overview from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
