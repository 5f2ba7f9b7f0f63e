package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lcoutinho/valor-explorer/internal/api/handlers"
	"github.com/lcoutinho/valor-explorer/internal/catalog"
	"github.com/lcoutinho/valor-explorer/internal/services"
	"github.com/lcoutinho/valor-explorer/internal/squad"
	"github.com/lcoutinho/valor-explorer/internal/storage"
	"github.com/lcoutinho/valor-explorer/pkg/config"
	"github.com/lcoutinho/valor-explorer/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *database.DB, store *catalog.Store, cache *services.CacheService, manager *squad.Manager, cfg *config.Config) {
	// Initialize services
	repo := storage.NewSavedSquadRepository(db)
	exportService := services.NewExportService(cfg.ShareBaseURL)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(store)
	statsHandler := handlers.NewStatsHandler(store, cache, time.Duration(cfg.StatsCacheTTL)*time.Second)
	squadHandler := handlers.NewSquadHandler(manager, store, repo, cfg.SuggestionLimit)
	exportHandler := handlers.NewExportHandler(repo, exportService)

	// Catalog endpoints
	group.GET("/players", catalogHandler.GetPlayers)
	group.GET("/players/top", catalogHandler.GetTopPlayers)
	group.GET("/teams", catalogHandler.GetTeams)
	group.GET("/positions", catalogHandler.GetPositions)
	group.GET("/formations", catalogHandler.GetFormations)

	// Aggregate stats endpoints
	group.GET("/stats/teams", statsHandler.GetTeamStats)
	group.GET("/stats/summary", statsHandler.GetSummary)

	// Squad-building sessions
	group.POST("/squad/sessions", squadHandler.CreateSession)
	group.GET("/squad/sessions/:id", squadHandler.GetSession)
	group.DELETE("/squad/sessions/:id", squadHandler.DeleteSession)
	group.PUT("/squad/sessions/:id/team", squadHandler.SelectTeam)
	group.PUT("/squad/sessions/:id/formation", squadHandler.SelectFormation)
	group.POST("/squad/sessions/:id/players", squadHandler.AddPlayer)
	group.DELETE("/squad/sessions/:id/players/:index", squadHandler.RemovePlayer)
	group.GET("/squad/sessions/:id/suggestions", squadHandler.GetSuggestions)
	group.POST("/squad/sessions/:id/save", squadHandler.SaveSquad)
	group.POST("/squad/sessions/:id/load", squadHandler.LoadSquad)

	// Saved squads
	group.GET("/squads", squadHandler.ListSquads)
	group.GET("/squads/:id", squadHandler.GetSquad)
	group.DELETE("/squads/:id", squadHandler.DeleteSquad)

	// Export
	group.GET("/squads/:id/share", exportHandler.GetShareLink)
	group.GET("/squads/:id/export.csv", exportHandler.ExportCSV)
}
