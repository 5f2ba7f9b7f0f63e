package squad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

func testPlayer(team, pos, name string, rating int, value float64) models.Player {
	return models.Player{
		Team:        team,
		Pos:         pos,
		Name:        name,
		Rating:      rating,
		BaseValue:   value,
		Multiplier:  1,
		MarketValue: value,
	}
}

func newTestSession(t *testing.T, homeTeam string) *Session {
	t.Helper()
	s := NewSession("test-session", 1000)
	require.NoError(t, s.SelectHomeTeam(homeTeam))
	return s
}

func TestAddPlayerHomeTeamIsFree(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	err := s.AddPlayer(testPlayer("Palmeiras", "ZG", "Gustavo", 85, 320), models.SectorDEF)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, s.Budget)

	err = s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorATA)
	require.NoError(t, err)
	assert.Equal(t, 750.0, s.Budget)
}

func TestAddPlayerInsufficientBudgetLeavesStateUnchanged(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 900), models.SectorATA))
	assert.Equal(t, 100.0, s.Budget)

	err := s.AddPlayer(testPlayer("Cruzeiro", "MAT", "Matheus", 84, 500), models.SectorMEI)
	assert.ErrorIs(t, err, ErrInsufficientBudget)
	assert.Equal(t, 100.0, s.Budget)
	assert.Len(t, s.Entries, 1)
}

func TestAddPlayerRejectsDuplicateIdentity(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	p := testPlayer("Flamengo", "CA", "Pedro", 88, 250)

	require.NoError(t, s.AddPlayer(p, models.SectorATA))
	err := s.AddPlayer(p, models.SectorATA)
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
	assert.Equal(t, 750.0, s.Budget)
}

func TestAddPlayerRejectsSlotMismatch(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	err := s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorDEF)
	assert.ErrorIs(t, err, ErrSlotMismatch)
	assert.Empty(t, s.Entries)

	// Goalkeepers occupy the dedicated GK slot, not DEF.
	err = s.AddPlayer(testPlayer("Flamengo", "GK", "Rossi", 86, 120), models.SectorDEF)
	assert.ErrorIs(t, err, ErrSlotMismatch)
	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "GK", "Rossi", 86, 120), models.SectorGK))
}

func TestAddPlayerRequiresHomeTeam(t *testing.T) {
	s := NewSession("test-session", 1000)
	err := s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorATA)
	assert.ErrorIs(t, err, ErrNoHomeTeam)
}

func TestBudgetConservationOverAddRemoveSequence(t *testing.T) {
	s := newTestSession(t, "Palmeiras")

	players := []models.Player{
		testPlayer("Flamengo", "CA", "Pedro", 88, 250),
		testPlayer("Palmeiras", "VOL", "Anibal", 82, 180),
		testPlayer("Cruzeiro", "ZG", "Villalba", 80, 120),
		testPlayer("Avai", "PE", "Igor", 75, 60),
	}
	for _, p := range players {
		require.NoError(t, s.AddPlayer(p, p.Slot()))
	}

	require.NoError(t, s.RemovePlayer(0)) // Pedro, refund 250
	require.NoError(t, s.RemovePlayer(0)) // Anibal, free

	var spent float64
	for _, e := range s.Entries {
		spent += e.Player.CostFor(s.HomeTeam)
	}
	assert.Equal(t, s.StartingBudget-spent, s.Budget)
	assert.Equal(t, 820.0, s.Budget)
}

func TestRemoveThenAddRoundTrip(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	p := testPlayer("Flamengo", "CA", "Pedro", 88, 250)

	require.NoError(t, s.AddPlayer(p, models.SectorATA))
	budgetBefore := s.Budget
	entriesBefore := len(s.Entries)

	require.NoError(t, s.RemovePlayer(0))
	require.NoError(t, s.AddPlayer(p, models.SectorATA))

	assert.Equal(t, budgetBefore, s.Budget)
	assert.Len(t, s.Entries, entriesBefore)
	assert.Equal(t, p.Key(), s.Entries[0].Player.Key())
}

func TestRemovePlayerInvalidIndex(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	assert.ErrorIs(t, s.RemovePlayer(0), ErrInvalidIndex)
	assert.ErrorIs(t, s.RemovePlayer(-1), ErrInvalidIndex)
}

func fillFormation442(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SelectFormation("4-4-2"))

	require.NoError(t, s.AddPlayer(testPlayer("Palmeiras", "GK", "Weverton", 87, 0), models.SectorGK))
	for i, pos := range []string{"ZG", "ZG", "LD", "LE"} {
		p := testPlayer("Palmeiras", pos, "Def"+string(rune('A'+i)), 80, 50)
		require.NoError(t, s.AddPlayer(p, models.SectorDEF))
	}
	for i, pos := range []string{"VOL", "VOL", "MLG", "MAT"} {
		p := testPlayer("Palmeiras", pos, "Mid"+string(rune('A'+i)), 81, 60)
		require.NoError(t, s.AddPlayer(p, models.SectorMEI))
	}
	for i, pos := range []string{"CA", "PE"} {
		p := testPlayer("Palmeiras", pos, "Att"+string(rune('A'+i)), 84, 90)
		require.NoError(t, s.AddPlayer(p, models.SectorATA))
	}
}

func TestFormationCompleteExactCounts(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	require.NoError(t, s.SelectFormation("4-4-2"))
	assert.False(t, s.FormationComplete())

	fillFormation442(t, s)
	assert.True(t, s.FormationComplete())

	// One extra attacker breaks exact equality.
	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorATA))
	assert.False(t, s.FormationComplete())
}

func TestSelectFormationKeepsEntries(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	fillFormation442(t, s)
	assert.True(t, s.FormationComplete())

	require.NoError(t, s.SelectFormation("4-3-3"))
	assert.Len(t, s.Entries, 11)
	assert.False(t, s.FormationComplete())
}

func TestSelectFormationUnknownName(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	assert.ErrorIs(t, s.SelectFormation("4-2-4"), models.ErrUnknownFormation)
	assert.Equal(t, "4-3-3", s.Formation.Name)
}

func TestSelectHomeTeamResetsSession(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorATA))
	assert.Equal(t, 750.0, s.Budget)

	require.NoError(t, s.SelectHomeTeam("Cruzeiro"))
	assert.Equal(t, 1000.0, s.Budget)
	assert.Empty(t, s.Entries)
	assert.Equal(t, "Cruzeiro", s.HomeTeam)
}

func TestStatisticsCountsHomePlayersAsZeroValue(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	require.NoError(t, s.AddPlayer(testPlayer("Palmeiras", "GK", "Weverton", 87, 150), models.SectorGK))
	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorATA))

	stats := s.Statistics()
	assert.Equal(t, 2, stats.TotalPlayers)
	assert.Equal(t, 175, stats.TotalRating)
	assert.Equal(t, 250.0, stats.TotalValue)
	assert.Equal(t, 87.5, stats.AvgRating)
	assert.Equal(t, 1, stats.SlotCounts[models.SectorGK])
	assert.Equal(t, 1, stats.SlotCounts[models.SectorATA])
}

func TestSnapshotRequiresCompleteFormation(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	_, err := s.Snapshot("")
	assert.ErrorIs(t, err, ErrIncompleteFormation)
}

func TestSnapshotAndRestoreRoundTrip(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	fillFormation442(t, s)
	require.NoError(t, s.AddPlayer(testPlayer("Flamengo", "CA", "Pedro", 88, 250), models.SectorATA))
	require.NoError(t, s.RemovePlayer(len(s.Entries)-1))

	snapshot, err := s.Snapshot("")
	require.NoError(t, err)
	assert.Equal(t, "Palmeiras - 4-4-2 (Equilibrado)", snapshot.Name)
	assert.Equal(t, "4-4-2", snapshot.Formation)
	assert.Equal(t, s.StartingBudget-s.Budget, snapshot.TotalValue)
	assert.Len(t, snapshot.Entries, 11)

	restored := NewSession("other-session", 1000)
	require.NoError(t, restored.Restore(snapshot))
	assert.Equal(t, "Palmeiras", restored.HomeTeam)
	assert.Equal(t, s.Budget, restored.Budget)
	assert.True(t, restored.FormationComplete())
}

func TestSnapshotCustomName(t *testing.T) {
	s := newTestSession(t, "Palmeiras")
	fillFormation442(t, s)

	snapshot, err := s.Snapshot("Time dos sonhos")
	require.NoError(t, err)
	assert.Equal(t, "Time dos sonhos", snapshot.Name)
}
