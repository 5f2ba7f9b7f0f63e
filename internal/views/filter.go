// Package views derives ordered player listings from the catalog. Everything
// here is a pure function of (players, criteria, sort key).
package views

import (
	"sort"
	"strings"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// Criteria is a conjunction of filter predicates. Zero values match everything.
type Criteria struct {
	Team     string        `form:"team" json:"team"`
	Position string        `form:"pos" json:"pos"`
	Sector   models.Sector `form:"sector" json:"sector"`
	Query    string        `form:"q" json:"q"`
}

// Apply filters the players down to those matching every active predicate.
// The free-text query matches case-insensitively on name or team.
func Apply(players []models.Player, c Criteria) []models.Player {
	query := strings.ToLower(c.Query)

	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if c.Team != "" && p.Team != c.Team {
			continue
		}
		if c.Position != "" && p.Pos != c.Position {
			continue
		}
		if c.Sector != "" && p.Sector() != c.Sector {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Team), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortKey selects the ordering of a player listing.
type SortKey string

const (
	SortByValue  SortKey = "value"  // market value, descending
	SortByRating SortKey = "rating" // rating, descending
	SortBySector SortKey = "sector" // DEF < MEI < ATA, then value descending
)

var sectorRank = map[models.Sector]int{
	models.SectorDEF: 0,
	models.SectorMEI: 1,
	models.SectorATA: 2,
}

// SortPlayers orders the slice in place. Sorts are stable so that equal keys
// keep catalog order.
func SortPlayers(players []models.Player, key SortKey) {
	switch key {
	case SortByRating:
		sort.SliceStable(players, func(i, j int) bool {
			return players[i].Rating > players[j].Rating
		})
	case SortBySector:
		sort.SliceStable(players, func(i, j int) bool {
			ri, rj := sectorRank[players[i].Sector()], sectorRank[players[j].Sector()]
			if ri != rj {
				return ri < rj
			}
			return players[i].MarketValue > players[j].MarketValue
		})
	default:
		sort.SliceStable(players, func(i, j int) bool {
			return players[i].MarketValue > players[j].MarketValue
		})
	}
}
