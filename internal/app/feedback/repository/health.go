package repository

import (
	"context"
	"time"

	"feedbackhub/pkg/logger"
	"feedbackhub/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// PingFunc probes the primary store, typically a MongoDB client ping.
type PingFunc func(ctx context.Context) error

// StoreHealthChecker re-evaluates the failover decision on a schedule: a
// failed probe degrades the store, a successful one restores the primary.
type StoreHealthChecker struct {
	cron     *cron.Cron
	failover *FailoverRepository
	ping     PingFunc
}

func NewStoreHealthChecker(failover *FailoverRepository, ping PingFunc) *StoreHealthChecker {
	return &StoreHealthChecker{
		cron:     cron.New(),
		failover: failover,
		ping:     ping,
	}
}

// Start registers the probe with the given cron schedule (e.g. "@every 30s")
// and runs it once immediately.
func (c *StoreHealthChecker) Start(schedule string) error {
	if _, err := c.cron.AddFunc(schedule, c.check); err != nil {
		return err
	}

	c.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Store health checker started")

	c.check()

	return nil
}

func (c *StoreHealthChecker) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Store health checker stopped")
}

func (c *StoreHealthChecker) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.ping(ctx); err != nil {
		metrics.StoreErrors.WithLabelValues("ping").Inc()
		if !c.failover.Degraded() {
			logger.Warn().Err(err).Msg("Primary store health check failed")
		}
		c.failover.MarkDegraded()
		return
	}

	c.failover.Restore()
}
