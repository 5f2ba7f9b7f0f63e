package squad

import (
	"fmt"
	"sort"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// SuggestionMode selects the acquisition ranking policy.
type SuggestionMode string

const (
	// SuggestCheap ranks by ascending cost.
	SuggestCheap SuggestionMode = "cheap"
	// SuggestExpensive ranks by descending cost. The reason text promises the
	// best rating, matching the behavior this tool replaces; the mismatch is
	// deliberate until product decides otherwise.
	SuggestExpensive SuggestionMode = "expensive"
	// SuggestValue ranks by descending rating-per-cost.
	SuggestValue SuggestionMode = "value"
)

// Suggestion is one ranked acquisition candidate for the next unfilled slot.
type Suggestion struct {
	Mode   SuggestionMode `json:"mode"`
	Player models.Player  `json:"player"`
	Reason string         `json:"reason"`
}

// NextUnfilledSlot returns the first slot, in goalkeeper-then-back-to-front
// order, whose count is below the formation requirement.
func (s *Session) NextUnfilledSlot() (models.Sector, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.slotCountsLocked()
	for _, slot := range models.SlotOrder {
		if counts[slot] < s.Formation.Required(slot) {
			return slot, true
		}
	}
	return "", false
}

// Suggest ranks catalog players for the next unfilled slot. Candidates
// already in the squad or beyond the remaining budget are excluded. Returns
// at most limit suggestions; an empty slice when the formation is complete.
// Ties keep catalog order.
func (s *Session) Suggest(catalog []models.Player, mode SuggestionMode, limit int) []Suggestion {
	slot, ok := s.NextUnfilledSlot()
	if !ok {
		return nil
	}

	s.mu.Lock()
	homeTeam := s.HomeTeam
	budget := s.Budget
	taken := make(map[string]bool, len(s.Entries))
	for _, e := range s.Entries {
		taken[e.Player.Key()] = true
	}
	s.mu.Unlock()

	candidates := make([]models.Player, 0, len(catalog))
	for _, p := range catalog {
		if p.Slot() != slot || taken[p.Key()] {
			continue
		}
		if p.CostFor(homeTeam) > budget {
			continue
		}
		candidates = append(candidates, p)
	}

	label := models.SectorLabel(slot)
	var reason string

	switch mode {
	case SuggestCheap:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CostFor(homeTeam) < candidates[j].CostFor(homeTeam)
		})
		reason = fmt.Sprintf("Mais barato para %s", label)
	case SuggestExpensive:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CostFor(homeTeam) > candidates[j].CostFor(homeTeam)
		})
		reason = fmt.Sprintf("Melhor rating para %s", label)
	default:
		mode = SuggestValue
		sort.SliceStable(candidates, func(i, j int) bool {
			return valueRatio(candidates[i], homeTeam) > valueRatio(candidates[j], homeTeam)
		})
		reason = fmt.Sprintf("Melhor custo-benefício para %s", label)
	}

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, p := range candidates {
		suggestions = append(suggestions, Suggestion{Mode: mode, Player: p, Reason: reason})
	}
	return suggestions
}

// valueRatio is rating per unit of cost. Home-team players cost zero, so the
// denominator is clamped to one.
func valueRatio(p models.Player, homeTeam string) float64 {
	cost := p.CostFor(homeTeam)
	if cost < 1 {
		cost = 1
	}
	return float64(p.Rating) / cost
}
