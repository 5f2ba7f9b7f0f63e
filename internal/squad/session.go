// Package squad implements the budget- and formation-constrained squad
// builder. A session owns one in-progress squad: the chosen home team, the
// active formation template, the remaining budget and the filled slots.
package squad

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// DefaultFormation is the template a fresh session starts with.
const DefaultFormation = "4-3-3"

// Session is one squad-building session. All methods are safe for concurrent
// use; the HTTP surface shares sessions across requests.
type Session struct {
	mu sync.Mutex

	ID             string
	HomeTeam       string
	Formation      models.Formation
	Budget         float64
	Entries        []models.SquadEntry
	StartingBudget float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Stats are the on-demand aggregates of a session's entries. Home-team
// players count as zero value.
type Stats struct {
	SlotCounts   map[models.Sector]int `json:"slot_counts"`
	TotalPlayers int                   `json:"total_players"`
	TotalRating  int                   `json:"total_rating"`
	TotalValue   float64               `json:"total_value"`
	AvgRating    float64               `json:"avg_rating"`
}

// View is the serializable snapshot of a session returned by the API.
type View struct {
	ID                string              `json:"id"`
	HomeTeam          string              `json:"home_team"`
	Formation         models.Formation    `json:"formation"`
	Budget            float64             `json:"budget"`
	StartingBudget    float64             `json:"starting_budget"`
	Entries           []models.SquadEntry `json:"entries"`
	Stats             Stats               `json:"stats"`
	FormationComplete bool                `json:"formation_complete"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func NewSession(id string, startingBudget float64) *Session {
	formation, _ := models.FormationRequirements(DefaultFormation)
	now := time.Now().UTC()
	return &Session{
		ID:             id,
		Formation:      formation,
		Budget:         startingBudget,
		StartingBudget: startingBudget,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SelectHomeTeam sets the home team, resets the budget and clears the squad.
// Any unsaved progress is discarded.
func (s *Session) SelectHomeTeam(team string) error {
	if team == "" {
		return fmt.Errorf("home team must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.HomeTeam = team
	s.Budget = s.StartingBudget
	s.Entries = nil
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// SelectFormation switches the active template. Existing entries are kept; a
// count mismatch against the new template shows up in the completion check.
func (s *Session) SelectFormation(name string) error {
	formation, err := models.FormationRequirements(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Formation = formation
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// AddPlayer appends the player to the squad at the given slot and charges the
// cost against the budget. On any violated precondition the session is left
// unchanged.
func (s *Session) AddPlayer(p models.Player, slot models.Sector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.HomeTeam == "" {
		return ErrNoHomeTeam
	}
	for _, e := range s.Entries {
		if e.Player.Key() == p.Key() {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
		}
	}
	if slot != p.Slot() {
		return fmt.Errorf("%w: %s plays %s, not %s", ErrSlotMismatch, p.Name, p.Slot(), slot)
	}

	cost := p.CostFor(s.HomeTeam)
	if cost > s.Budget {
		return fmt.Errorf("%w: %s costs %.2f, budget is %.2f", ErrInsufficientBudget, p.Name, cost, s.Budget)
	}

	s.Entries = append(s.Entries, models.SquadEntry{Player: p, Slot: slot})
	s.Budget -= cost
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// RemovePlayer removes the entry at index and restores its cost. The cost is
// recomputed from home-team membership, which is immutable, so it matches
// what was charged on add.
func (s *Session) RemovePlayer(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.Entries) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	entry := s.Entries[index]
	s.Entries = append(s.Entries[:index], s.Entries[index+1:]...)
	s.Budget += entry.Player.CostFor(s.HomeTeam)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// FormationComplete reports whether every slot count exactly equals the
// active formation's requirement.
func (s *Session) FormationComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formationCompleteLocked()
}

func (s *Session) formationCompleteLocked() bool {
	counts := s.slotCountsLocked()
	for _, slot := range models.SlotOrder {
		if counts[slot] != s.Formation.Required(slot) {
			return false
		}
	}
	return true
}

func (s *Session) slotCountsLocked() map[models.Sector]int {
	counts := make(map[models.Sector]int, len(models.SlotOrder))
	for _, e := range s.Entries {
		counts[e.Slot]++
	}
	return counts
}

// Statistics folds the current entries into aggregates. Nothing is cached
// across mutations.
func (s *Session) Statistics() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statisticsLocked()
}

func (s *Session) statisticsLocked() Stats {
	stats := Stats{SlotCounts: s.slotCountsLocked()}
	for _, e := range s.Entries {
		stats.TotalPlayers++
		stats.TotalRating += e.Player.Rating
		stats.TotalValue += e.Player.CostFor(s.HomeTeam)
	}
	if stats.TotalPlayers > 0 {
		stats.AvgRating = round1(float64(stats.TotalRating) / float64(stats.TotalPlayers))
	}
	return stats
}

// Snapshot builds an immutable saved squad from a complete session. An empty
// name defaults to "<home team> - <formation label>".
func (s *Session) Snapshot(name string) (models.SavedSquad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.formationCompleteLocked() {
		return models.SavedSquad{}, ErrIncompleteFormation
	}
	if name == "" {
		name = fmt.Sprintf("%s - %s", s.HomeTeam, s.Formation.Label)
	}

	entries := make(models.SquadEntryList, len(s.Entries))
	copy(entries, s.Entries)

	stats := s.statisticsLocked()
	return models.SavedSquad{
		Name:       name,
		HomeTeam:   s.HomeTeam,
		Formation:  s.Formation.Name,
		Entries:    entries,
		TotalValue: s.StartingBudget - s.Budget,
		AvgRating:  stats.AvgRating,
	}, nil
}

// Restore replaces the session state wholesale with a saved squad. The budget
// is recomputed from the snapshot's total spend.
func (s *Session) Restore(saved models.SavedSquad) error {
	formation, err := models.FormationRequirements(saved.Formation)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.HomeTeam = saved.HomeTeam
	s.Formation = formation
	s.Entries = append([]models.SquadEntry(nil), saved.Entries...)
	s.Budget = s.StartingBudget - saved.TotalValue
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// View returns a serializable copy of the session for API responses.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.SquadEntry, len(s.Entries))
	copy(entries, s.Entries)

	return View{
		ID:                s.ID,
		HomeTeam:          s.HomeTeam,
		Formation:         s.Formation,
		Budget:            s.Budget,
		StartingBudget:    s.StartingBudget,
		Entries:           entries,
		Stats:             s.statisticsLocked(),
		FormationComplete: s.formationCompleteLocked(),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
