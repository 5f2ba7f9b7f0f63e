// Package storage is the durable home of saved squads: an explicit
// repository with a load/save contract instead of ambient storage access.
package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/pkg/database"
)

// ErrSquadNotFound signals a lookup or delete against an unknown snapshot.
var ErrSquadNotFound = errors.New("saved squad not found")

type SavedSquadRepository struct {
	db *database.DB
}

func NewSavedSquadRepository(db *database.DB) *SavedSquadRepository {
	return &SavedSquadRepository{db: db}
}

// List returns every saved squad, oldest first.
func (r *SavedSquadRepository) List() ([]models.SavedSquad, error) {
	var squads []models.SavedSquad
	if err := r.db.Order("created_at asc, id asc").Find(&squads).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved squads: %w", err)
	}
	return squads, nil
}

// Get fetches one snapshot by identifier.
func (r *SavedSquadRepository) Get(id uint) (models.SavedSquad, error) {
	var squad models.SavedSquad
	err := r.db.First(&squad, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SavedSquad{}, ErrSquadNotFound
		}
		return models.SavedSquad{}, fmt.Errorf("failed to fetch saved squad: %w", err)
	}
	return squad, nil
}

// Save persists a new snapshot and fills in its identifier.
func (r *SavedSquadRepository) Save(squad *models.SavedSquad) error {
	if err := r.db.Create(squad).Error; err != nil {
		return fmt.Errorf("failed to save squad: %w", err)
	}
	return nil
}

// Delete removes one snapshot by identifier.
func (r *SavedSquadRepository) Delete(id uint) error {
	result := r.db.Delete(&models.SavedSquad{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved squad: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSquadNotFound
	}
	return nil
}

// Count returns the number of saved squads.
func (r *SavedSquadRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.SavedSquad{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count saved squads: %w", err)
	}
	return count, nil
}
