// Package stats produces the per-team and per-sector rollups behind the
// reporting views. Pure reductions over the catalog.
package stats

import (
	"math"
	"sort"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// TeamStats is the per-team reduction of the catalog.
type TeamStats struct {
	Team        string  `json:"team"`
	TotalValue  float64 `json:"total_value"`
	PlayerCount int     `json:"player_count"`
	AvgRating   float64 `json:"avg_rating"`
	DEFCount    int     `json:"def_count"`
	MEICount    int     `json:"mei_count"`
	ATACount    int     `json:"ata_count"`
	DEFValue    float64 `json:"def_value"`
	MEIValue    float64 `json:"mei_value"`
	ATAValue    float64 `json:"ata_value"`
}

// SectorShare is one slice of the sector distribution.
type SectorShare struct {
	Sector  models.Sector `json:"sector"`
	Label   string        `json:"label"`
	Value   float64       `json:"value"`
	Players int           `json:"players"`
	Percent float64       `json:"percent"`
}

// Summary is derived from the per-team reduction, never computed
// independently of it.
type Summary struct {
	TotalMarketValue float64       `json:"total_market_value"`
	TeamCount        int           `json:"team_count"`
	AvgTeamValue     float64       `json:"avg_team_value"`
	HighestTeam      *TeamStats    `json:"highest_team,omitempty"`
	Sectors          []SectorShare `json:"sectors"`
}

// Aggregate folds the catalog into per-team stats, sorted by total market
// value descending. Goalkeepers count under DEF, per the sector taxonomy.
func Aggregate(players []models.Player) []TeamStats {
	byTeam := make(map[string]*TeamStats)
	ratingSums := make(map[string]int)

	for _, p := range players {
		ts, ok := byTeam[p.Team]
		if !ok {
			ts = &TeamStats{Team: p.Team}
			byTeam[p.Team] = ts
		}

		ts.TotalValue += p.MarketValue
		ts.PlayerCount++
		ratingSums[p.Team] += p.Rating

		switch p.Sector() {
		case models.SectorMEI:
			ts.MEICount++
			ts.MEIValue += p.MarketValue
		case models.SectorATA:
			ts.ATACount++
			ts.ATAValue += p.MarketValue
		default:
			ts.DEFCount++
			ts.DEFValue += p.MarketValue
		}
	}

	out := make([]TeamStats, 0, len(byTeam))
	for team, ts := range byTeam {
		if ts.PlayerCount > 0 {
			ts.AvgRating = round1(float64(ratingSums[team]) / float64(ts.PlayerCount))
		}
		out = append(out, *ts)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Summarize derives the headline numbers from the per-team reduction.
func Summarize(teamStats []TeamStats) Summary {
	summary := Summary{TeamCount: len(teamStats)}

	var defShare, meiShare, ataShare SectorShare
	defShare.Sector, defShare.Label = models.SectorDEF, models.SectorLabel(models.SectorDEF)
	meiShare.Sector, meiShare.Label = models.SectorMEI, models.SectorLabel(models.SectorMEI)
	ataShare.Sector, ataShare.Label = models.SectorATA, models.SectorLabel(models.SectorATA)

	for _, ts := range teamStats {
		summary.TotalMarketValue += ts.TotalValue
		defShare.Value += ts.DEFValue
		defShare.Players += ts.DEFCount
		meiShare.Value += ts.MEIValue
		meiShare.Players += ts.MEICount
		ataShare.Value += ts.ATAValue
		ataShare.Players += ts.ATACount
	}

	if len(teamStats) > 0 {
		summary.AvgTeamValue = summary.TotalMarketValue / float64(len(teamStats))
		highest := teamStats[0]
		summary.HighestTeam = &highest
	}

	for _, share := range []*SectorShare{&defShare, &meiShare, &ataShare} {
		if summary.TotalMarketValue > 0 {
			share.Percent = round1(share.Value / summary.TotalMarketValue * 100)
		}
	}

	summary.Sectors = []SectorShare{defShare, meiShare, ataShare}
	return summary
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
