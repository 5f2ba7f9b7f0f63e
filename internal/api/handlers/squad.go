package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lcoutinho/valor-explorer/internal/catalog"
	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/internal/squad"
	"github.com/lcoutinho/valor-explorer/internal/storage"
	"github.com/lcoutinho/valor-explorer/pkg/logger"
	"github.com/lcoutinho/valor-explorer/pkg/utils"
)

type SquadHandler struct {
	manager         *squad.Manager
	store           *catalog.Store
	repo            *storage.SavedSquadRepository
	suggestionLimit int
}

func NewSquadHandler(manager *squad.Manager, store *catalog.Store, repo *storage.SavedSquadRepository, suggestionLimit int) *SquadHandler {
	return &SquadHandler{
		manager:         manager,
		store:           store,
		repo:            repo,
		suggestionLimit: suggestionLimit,
	}
}

// CreateSession starts a squad-building session, optionally selecting the
// home team and formation in the same call.
func (h *SquadHandler) CreateSession(c *gin.Context) {
	var req struct {
		HomeTeam  string `json:"home_team"`
		Formation string `json:"formation"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendValidationError(c, "Invalid request body", err.Error())
			return
		}
	}

	session := h.manager.Create()

	if req.HomeTeam != "" {
		if err := session.SelectHomeTeam(req.HomeTeam); err != nil {
			h.manager.Delete(session.ID)
			utils.SendValidationError(c, "Invalid home team", err.Error())
			return
		}
	}
	if req.Formation != "" {
		if err := session.SelectFormation(req.Formation); err != nil {
			h.manager.Delete(session.ID)
			utils.SendError(c, http.StatusBadRequest,
				utils.NewAppError(utils.ErrCodeUnknownFormation, "Unknown formation", err.Error()))
			return
		}
	}

	logger.WithSessionID(session.ID).Info("Squad session created")
	utils.SendCreated(c, session.View())
}

// GetSession returns the session state.
func (h *SquadHandler) GetSession(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}
	utils.SendSuccess(c, session.View())
}

// DeleteSession discards a session and its unsaved progress.
func (h *SquadHandler) DeleteSession(c *gin.Context) {
	h.manager.Delete(c.Param("id"))
	utils.SendSuccess(c, gin.H{"deleted": true})
}

// SelectTeam sets the home team, resetting budget and squad.
func (h *SquadHandler) SelectTeam(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	var req struct {
		Team string `json:"team" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := session.SelectHomeTeam(req.Team); err != nil {
		utils.SendValidationError(c, "Invalid home team", err.Error())
		return
	}
	utils.SendSuccess(c, session.View())
}

// SelectFormation switches the formation template.
func (h *SquadHandler) SelectFormation(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	var req struct {
		Formation string `json:"formation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := session.SelectFormation(req.Formation); err != nil {
		utils.SendError(c, http.StatusBadRequest,
			utils.NewAppError(utils.ErrCodeUnknownFormation, "Unknown formation", err.Error()))
		return
	}
	utils.SendSuccess(c, session.View())
}

// AddPlayer adds a catalog player to the squad. The slot defaults to the one
// the player's position maps to.
func (h *SquadHandler) AddPlayer(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	var req struct {
		Team string `json:"team" binding:"required"`
		Name string `json:"name" binding:"required"`
		Slot string `json:"slot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	player, ok := h.store.Find(req.Team, req.Name)
	if !ok {
		utils.SendNotFound(c, "Player not found in catalog")
		return
	}

	slot := player.Slot()
	if req.Slot != "" {
		slot = models.Sector(req.Slot)
	}

	if err := session.AddPlayer(player, slot); err != nil {
		h.sendSquadError(c, err)
		return
	}
	utils.SendSuccess(c, session.View())
}

// RemovePlayer removes the squad entry at the given index and refunds its cost.
func (h *SquadHandler) RemovePlayer(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.SendValidationError(c, "Invalid entry index", err.Error())
		return
	}

	if err := session.RemovePlayer(index); err != nil {
		utils.SendValidationError(c, "Cannot remove player", err.Error())
		return
	}
	utils.SendSuccess(c, session.View())
}

// GetSuggestions ranks acquisition candidates for the next unfilled slot.
func (h *SquadHandler) GetSuggestions(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	mode := squad.SuggestionMode(c.DefaultQuery("mode", string(squad.SuggestValue)))
	suggestions := session.Suggest(h.store.Players(), mode, h.suggestionLimit)
	if suggestions == nil {
		suggestions = []squad.Suggestion{}
	}
	utils.SendSuccess(c, suggestions)
}

// SaveSquad snapshots a complete session into the durable collection.
func (h *SquadHandler) SaveSquad(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendValidationError(c, "Invalid request body", err.Error())
			return
		}
	}

	snapshot, err := session.Snapshot(req.Name)
	if err != nil {
		h.sendSquadError(c, err)
		return
	}

	if err := h.repo.Save(&snapshot); err != nil {
		logger.WithSessionID(session.ID).Errorf("Failed to save squad: %v", err)
		utils.SendInternalError(c, "Failed to save squad")
		return
	}

	logger.WithSessionID(session.ID).WithField("squad_id", snapshot.ID).Info("Squad saved")
	utils.SendCreated(c, snapshot)
}

// LoadSquad replaces the session state with a saved snapshot.
func (h *SquadHandler) LoadSquad(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}

	var req struct {
		SquadID uint `json:"squad_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	saved, err := h.repo.Get(req.SquadID)
	if err != nil {
		if errors.Is(err, storage.ErrSquadNotFound) {
			utils.SendNotFound(c, "Saved squad not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch saved squad")
		}
		return
	}

	if err := session.Restore(saved); err != nil {
		utils.SendError(c, http.StatusBadRequest,
			utils.NewAppError(utils.ErrCodeUnknownFormation, "Saved squad has an unknown formation", err.Error()))
		return
	}
	utils.SendSuccess(c, session.View())
}

// ListSquads returns every saved squad.
func (h *SquadHandler) ListSquads(c *gin.Context) {
	squads, err := h.repo.List()
	if err != nil {
		utils.SendInternalError(c, "Failed to list saved squads")
		return
	}
	utils.SendSuccess(c, squads)
}

// GetSquad returns one saved squad.
func (h *SquadHandler) GetSquad(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid squad ID", err.Error())
		return
	}

	saved, err := h.repo.Get(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrSquadNotFound) {
			utils.SendNotFound(c, "Saved squad not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch saved squad")
		}
		return
	}
	utils.SendSuccess(c, saved)
}

// DeleteSquad removes one saved squad from the durable collection.
func (h *SquadHandler) DeleteSquad(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid squad ID", err.Error())
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		if errors.Is(err, storage.ErrSquadNotFound) {
			utils.SendNotFound(c, "Saved squad not found")
		} else {
			utils.SendInternalError(c, "Failed to delete saved squad")
		}
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": true})
}

func (h *SquadHandler) sendSquadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, squad.ErrInsufficientBudget):
		utils.SendError(c, http.StatusConflict,
			utils.NewAppError(utils.ErrCodeInsufficientBudget, "Player exceeds the remaining budget", err.Error()))
	case errors.Is(err, squad.ErrDuplicatePlayer):
		utils.SendError(c, http.StatusConflict,
			utils.NewAppError(utils.ErrCodeDuplicatePlayer, "Player is already in the squad", err.Error()))
	case errors.Is(err, squad.ErrSlotMismatch):
		utils.SendError(c, http.StatusBadRequest,
			utils.NewAppError(utils.ErrCodeSlotMismatch, "Player does not fit that slot", err.Error()))
	case errors.Is(err, squad.ErrIncompleteFormation):
		utils.SendError(c, http.StatusBadRequest,
			utils.NewAppError(utils.ErrCodeIncompleteFormation, "Formation is incomplete", err.Error()))
	case errors.Is(err, squad.ErrNoHomeTeam):
		utils.SendValidationError(c, "Select a home team first", err.Error())
	default:
		utils.SendInternalError(c, "Squad operation failed")
	}
}
