package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/internal/services"
	"github.com/lcoutinho/valor-explorer/internal/storage"
	"github.com/lcoutinho/valor-explorer/pkg/utils"
)

type ExportHandler struct {
	repo          *storage.SavedSquadRepository
	exportService *services.ExportService
}

func NewExportHandler(repo *storage.SavedSquadRepository, exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		repo:          repo,
		exportService: exportService,
	}
}

// GetShareLink returns the shareable link for a saved squad. The embedded
// code is truncated and lossy; it identifies, it does not round-trip.
func (h *ExportHandler) GetShareLink(c *gin.Context) {
	squad, ok := h.fetchSquad(c)
	if !ok {
		return
	}

	link, err := h.exportService.ShareLink(squad)
	if err != nil {
		utils.SendInternalError(c, "Failed to build share link")
		return
	}
	utils.SendSuccess(c, gin.H{"link": link})
}

// ExportCSV streams a saved squad as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	squad, ok := h.fetchSquad(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.SquadCSV(squad)
	if err != nil {
		utils.SendInternalError(c, "Failed to export squad")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ExportHandler) fetchSquad(c *gin.Context) (models.SavedSquad, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid squad ID", err.Error())
		return models.SavedSquad{}, false
	}

	squad, err := h.repo.Get(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrSquadNotFound) {
			utils.SendNotFound(c, "Saved squad not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch saved squad")
		}
		return models.SavedSquad{}, false
	}
	return squad, true
}
