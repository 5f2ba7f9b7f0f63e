package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lcoutinho/valor-explorer/internal/catalog"
	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/internal/views"
	"github.com/lcoutinho/valor-explorer/pkg/utils"
)

type CatalogHandler struct {
	store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{
		store: store,
	}
}

// GetPlayers returns the catalog filtered and sorted per query parameters.
func (h *CatalogHandler) GetPlayers(c *gin.Context) {
	var criteria views.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters", err.Error())
		return
	}

	sortKey := views.SortKey(c.DefaultQuery("sort", string(views.SortByValue)))

	players := views.Apply(h.store.Players(), criteria)
	views.SortPlayers(players, sortKey)

	meta := &utils.Meta{Total: int64(len(players))}
	utils.SendSuccessWithMeta(c, players, meta)
}

// GetTopPlayers returns the most valuable players across the whole catalog.
func (h *CatalogHandler) GetTopPlayers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "3"))
	if err != nil || limit < 1 {
		utils.SendValidationError(c, "Invalid limit", "limit must be a positive integer")
		return
	}

	utils.SendSuccess(c, h.store.TopByValue(limit))
}

// GetTeams returns the distinct team names in the catalog.
func (h *CatalogHandler) GetTeams(c *gin.Context) {
	utils.SendSuccess(c, h.store.Teams())
}

// GetPositions returns the position codes present in the catalog along with
// their taxonomy details for display.
func (h *CatalogHandler) GetPositions(c *gin.Context) {
	codes := h.store.Positions()

	type positionView struct {
		Code   string        `json:"code"`
		Label  string        `json:"label"`
		Sector models.Sector `json:"sector"`
	}

	out := make([]positionView, 0, len(codes))
	for _, code := range codes {
		view := positionView{Code: code, Label: code, Sector: models.SectorOf(code)}
		if info, ok := models.PositionDetails(code); ok {
			view.Label = info.Label
		}
		out = append(out, view)
	}

	utils.SendSuccess(c, out)
}

// GetFormations returns the available formation templates.
func (h *CatalogHandler) GetFormations(c *gin.Context) {
	utils.SendSuccess(c, models.Formations())
}
