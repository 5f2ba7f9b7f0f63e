package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/lcoutinho/valor-explorer/internal/services"
)

// Refresher re-loads the catalog on a fixed interval. The catalog is static
// data, so the refresher is opt-in; with no interval configured the one-time
// startup load is all that happens.
type Refresher struct {
	store     *Store
	loader    *Loader
	cache     *services.CacheService
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
	interval  time.Duration
}

func NewRefresher(store *Store, loader *Loader, cache *services.CacheService, logger *logrus.Logger, interval time.Duration) *Refresher {
	return &Refresher{
		store:    store,
		loader:   loader,
		cache:    cache,
		logger:   logger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start begins the scheduled refresh.
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("catalog refresher is already running")
	}
	if r.interval <= 0 {
		return fmt.Errorf("catalog refresher requires a positive interval")
	}

	schedule := fmt.Sprintf("@every %s", r.interval.String())
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}

	r.cron.Start()
	r.isRunning = true
	r.logger.WithField("interval", r.interval.String()).Info("Catalog refresher started")
	return nil
}

// Stop halts the scheduled refresh.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	<-ctx.Done()

	r.isRunning = false
	r.logger.Info("Catalog refresher stopped")
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	players, err := r.loader.Load(ctx)
	if err != nil {
		r.logger.Errorf("Scheduled catalog refresh failed: %v", err)
		return
	}

	r.store.Replace(players)

	// Cached rollups were computed from the old catalog; drop them so the
	// next stats request sees the refreshed data.
	if r.cache.Enabled() {
		if err := r.cache.Delete(ctx, services.TeamStatsCacheKey(), services.SummaryCacheKey()); err != nil {
			r.logger.Warnf("Failed to invalidate stats cache after refresh: %v", err)
		}
	}
}
