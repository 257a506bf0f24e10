package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

var ErrEmptySchedule = errors.New("catalog warm schedule is empty")

// CacheWarmer loads the remote catalog into the product cache.
type CacheWarmer interface {
	WarmCache(ctx context.Context) (int, error)
}

// CatalogWarmScheduler refreshes the product cache on a cron schedule so
// cart adds rarely wait on the remote catalog.
type CatalogWarmScheduler struct {
	cron     *cron.Cron
	warmer   CacheWarmer
	schedule string
	timeout  time.Duration
}

func NewCatalogWarmScheduler(warmer CacheWarmer, schedule string, timeout time.Duration) *CatalogWarmScheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CatalogWarmScheduler{
		cron:     cron.New(),
		warmer:   warmer,
		schedule: schedule,
		timeout:  timeout,
	}
}

// Start registers the warm job and starts the cron runner. The first warm
// happens on the first tick, not at start.
func (s *CatalogWarmScheduler) Start() error {
	if s.schedule == "" {
		return ErrEmptySchedule
	}

	_, err := s.cron.AddFunc(s.schedule, s.RunOnce)
	if err != nil {
		logger.Error("Failed to add cron job for catalog cache warm", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Catalog warm scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// RunOnce warms the cache immediately.
func (s *CatalogWarmScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	logger.Info("Starting scheduled catalog cache warm")

	count, err := s.warmer.WarmCache(ctx)
	if err != nil {
		logger.Error("Failed to warm catalog cache from scheduler", err)
		return
	}

	logger.Info("Catalog cache warmed from scheduler", map[string]interface{}{
		"count": count,
	})
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *CatalogWarmScheduler) Stop() {
	logger.Info("Stopping catalog warm scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Catalog warm scheduler stopped")
}
