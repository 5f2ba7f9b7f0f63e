package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lcoutinho/valor-explorer/internal/catalog"
	"github.com/lcoutinho/valor-explorer/internal/services"
	"github.com/lcoutinho/valor-explorer/internal/stats"
	"github.com/lcoutinho/valor-explorer/pkg/utils"
)

type StatsHandler struct {
	store    *catalog.Store
	cache    *services.CacheService
	cacheTTL time.Duration
}

func NewStatsHandler(store *catalog.Store, cache *services.CacheService, cacheTTL time.Duration) *StatsHandler {
	return &StatsHandler{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetTeamStats returns the per-team rollup of the catalog.
func (h *StatsHandler) GetTeamStats(c *gin.Context) {
	var cached []stats.TeamStats
	err := h.cache.Get(c.Request.Context(), services.TeamStatsCacheKey(), &cached)
	if err == nil {
		utils.SendSuccess(c, cached)
		return
	}
	if !errors.Is(err, services.ErrCacheMiss) {
		logrus.Warnf("Team stats cache read failed: %v", err)
	}

	teamStats := stats.Aggregate(h.store.Players())

	if err := h.cache.SetWithRetry(c.Request.Context(), services.TeamStatsCacheKey(), teamStats, h.cacheTTL, 3); err != nil {
		logrus.Warnf("Team stats cache write failed: %v", err)
	}

	utils.SendSuccess(c, teamStats)
}

// GetSummary returns the headline aggregates derived from the per-team rollup.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	var cached stats.Summary
	err := h.cache.Get(c.Request.Context(), services.SummaryCacheKey(), &cached)
	if err == nil {
		utils.SendSuccess(c, cached)
		return
	}
	if !errors.Is(err, services.ErrCacheMiss) {
		logrus.Warnf("Summary cache read failed: %v", err)
	}

	summary := stats.Summarize(stats.Aggregate(h.store.Players()))

	if err := h.cache.SetWithRetry(c.Request.Context(), services.SummaryCacheKey(), summary, h.cacheTTL, 3); err != nil {
		logrus.Warnf("Summary cache write failed: %v", err)
	}

	utils.SendSuccess(c, summary)
}
