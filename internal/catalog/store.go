package catalog

import (
	"sort"
	"sync"
	"time"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// Store holds the in-memory player catalog. The catalog is replaced wholesale
// on (re)load and read concurrently by every handler.
type Store struct {
	mu       sync.RWMutex
	players  []models.Player
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps the catalog contents.
func (s *Store) Replace(players []models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = players
	s.loadedAt = time.Now().UTC()
}

// Players returns a copy of the catalog.
func (s *Store) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Player, len(s.players))
	copy(out, s.players)
	return out
}

// Len returns the catalog size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// LoadedAt returns when the catalog was last replaced.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Teams returns the distinct team names, sorted.
func (s *Store) Teams() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var teams []string
	for _, p := range s.players {
		if !seen[p.Team] {
			seen[p.Team] = true
			teams = append(teams, p.Team)
		}
	}
	sort.Strings(teams)
	return teams
}

// Positions returns the distinct position codes, sorted.
func (s *Store) Positions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var positions []string
	for _, p := range s.players {
		if !seen[p.Pos] {
			seen[p.Pos] = true
			positions = append(positions, p.Pos)
		}
	}
	sort.Strings(positions)
	return positions
}

// TopByValue returns the n most valuable players in the catalog.
func (s *Store) TopByValue(n int) []models.Player {
	players := s.Players()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].MarketValue > players[j].MarketValue
	})
	if n > len(players) {
		n = len(players)
	}
	return players[:n]
}

// Find looks up a player by identity.
func (s *Store) Find(team, name string) (models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.Team == team && p.Name == name {
			return p, true
		}
	}
	return models.Player{}, false
}
