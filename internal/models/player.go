package models

import "fmt"

// Player is one record of the market-value catalog. The catalog is loaded once
// at startup and never mutated; MarketValue is stored in the source data, not
// recomputed from BaseValue * Multiplier.
type Player struct {
	Team        string  `json:"team"`
	Pos         string  `json:"pos"`
	Name        string  `json:"name"`
	Rating      int     `json:"rating"`
	BaseValue   float64 `json:"base_value"`
	Multiplier  float64 `json:"multiplier"`
	MarketValue float64 `json:"market_value"`
}

// Key is the player's identity within the catalog.
func (p Player) Key() string {
	return fmt.Sprintf("%s-%s", p.Team, p.Name)
}

// Sector returns the player's field sector.
func (p Player) Sector() Sector {
	return SectorOf(p.Pos)
}

// Slot returns the squad slot the player occupies.
func (p Player) Slot() Sector {
	return SlotFor(p.Pos)
}

// CostFor returns the acquisition cost relative to a home team. Home-team
// players are free; everyone else costs their market value.
func (p Player) CostFor(homeTeam string) float64 {
	if p.Team == homeTeam {
		return 0
	}
	return p.MarketValue
}
