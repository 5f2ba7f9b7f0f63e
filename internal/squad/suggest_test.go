package squad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

func suggestionCatalog() []models.Player {
	return []models.Player{
		testPlayer("Flamengo", "GK", "Rossi", 86, 120),
		testPlayer("Cruzeiro", "GK", "Cassio", 84, 90),
		testPlayer("Palmeiras", "GK", "Weverton", 87, 150),
		testPlayer("Flamengo", "ZG", "Leo Pereira", 83, 140),
		testPlayer("Cruzeiro", "ZG", "Villalba", 80, 100),
		testPlayer("Flamengo", "CA", "Pedro", 88, 250),
	}
}

func TestSuggestTargetsGoalkeeperFirst(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	suggestions := s.Suggest(suggestionCatalog(), SuggestValue, 3)
	require.NotEmpty(t, suggestions)
	for _, sugg := range suggestions {
		assert.Equal(t, "GK", sugg.Player.Pos)
		assert.Equal(t, "Melhor custo-benefício para Goleiro", sugg.Reason)
	}
}

func TestSuggestCheapOrdersByAscendingCost(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	suggestions := s.Suggest(suggestionCatalog(), SuggestCheap, 3)
	require.Len(t, suggestions, 3)
	// Weverton is home-team and free, then Cassio, then Rossi.
	assert.Equal(t, "Weverton", suggestions[0].Player.Name)
	assert.Equal(t, "Cassio", suggestions[1].Player.Name)
	assert.Equal(t, "Rossi", suggestions[2].Player.Name)
}

func TestSuggestExpensiveOrdersByDescendingCost(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	suggestions := s.Suggest(suggestionCatalog(), SuggestExpensive, 3)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "Rossi", suggestions[0].Player.Name)
	assert.Equal(t, "Cassio", suggestions[1].Player.Name)
	assert.Equal(t, "Weverton", suggestions[2].Player.Name)
}

func TestSuggestValueRanksByRatingPerCost(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	suggestions := s.Suggest(suggestionCatalog(), SuggestValue, 3)
	require.Len(t, suggestions, 3)
	// Weverton costs nothing, so his ratio uses the clamped denominator and
	// dominates: 87/1 > 84/90 > 86/120.
	assert.Equal(t, "Weverton", suggestions[0].Player.Name)
	assert.Equal(t, "Cassio", suggestions[1].Player.Name)
	assert.Equal(t, "Rossi", suggestions[2].Player.Name)
}

func TestSuggestExcludesUnaffordableAndAssignedPlayers(t *testing.T) {
	s := newTestSession(t, "Avai")
	require.NoError(t, s.AddPlayer(testPlayer("Cruzeiro", "GK", "Cassio", 84, 90), models.SectorGK))

	// GK slot is filled; next unfilled slot is DEF. Spend down so that only
	// the cheaper defender is affordable.
	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 800), models.SectorATA))

	suggestions := s.Suggest(suggestionCatalog(), SuggestValue, 3)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Villalba", suggestions[0].Player.Name)

	for _, sugg := range suggestions {
		assert.LessOrEqual(t, sugg.Player.CostFor(s.HomeTeam), s.Budget)
	}
}

func TestSuggestReturnsNothingWhenFormationComplete(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	fillFormation442(t, s)

	assert.Empty(t, s.Suggest(suggestionCatalog(), SuggestValue, 3))
}

func TestSuggestHonorsLimit(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	suggestions := s.Suggest(suggestionCatalog(), SuggestCheap, 2)
	assert.Len(t, suggestions, 2)
}

func TestNextUnfilledSlotOrder(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	slot, ok := s.NextUnfilledSlot()
	require.True(t, ok)
	assert.Equal(t, models.SectorGK, slot)

	require.NoError(t, s.AddPlayer(testPlayer("Palmeiras", "GK", "Weverton", 87, 0), models.SectorGK))
	slot, ok = s.NextUnfilledSlot()
	require.True(t, ok)
	assert.Equal(t, models.SectorDEF, slot)
}
