package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SquadEntry is one filled slot of a squad: the player plus the slot he was
// assigned when added.
type SquadEntry struct {
	Player Player `json:"player"`
	Slot   Sector `json:"slot"`
}

// SquadEntryList is stored as a JSON column on saved squads.
type SquadEntryList []SquadEntry

// Scan implements the sql.Scanner interface for the JSON column.
func (l *SquadEntryList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SquadEntryList", value)
	}

	var entries []SquadEntry
	if err := json.Unmarshal(bytes, &entries); err != nil {
		return err
	}

	*l = entries
	return nil
}

// Value implements the driver.Valuer interface for the JSON column.
func (l SquadEntryList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// SavedSquad is an immutable snapshot of a completed squad-building session.
type SavedSquad struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	HomeTeam   string         `gorm:"not null;index" json:"home_team"`
	Formation  string         `gorm:"not null" json:"formation"`
	Entries    SquadEntryList `gorm:"type:json" json:"entries"`
	TotalValue float64        `gorm:"not null" json:"total_value"`
	AvgRating  float64        `gorm:"not null" json:"avg_rating"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName fixes the table the snapshots persist to.
func (SavedSquad) TableName() string {
	return "saved_squads"
}

// HasPlayer checks if a player is part of the snapshot.
func (s *SavedSquad) HasPlayer(key string) bool {
	for _, e := range s.Entries {
		if e.Player.Key() == key {
			return true
		}
	}
	return false
}

// SlotCounts returns how many entries fill each slot.
func (s *SavedSquad) SlotCounts() map[Sector]int {
	counts := make(map[Sector]int, len(SlotOrder))
	for _, e := range s.Entries {
		counts[e.Slot]++
	}
	return counts
}
