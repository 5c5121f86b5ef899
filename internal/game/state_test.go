package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlewars/engine/internal/config"
	"github.com/castlewars/engine/internal/game/core"
	"github.com/castlewars/engine/internal/testutil"
)

func newTestState(t *testing.T, m *core.WorldMap, cfg config.GameConfig) *GameState {
	t.Helper()
	gs, err := NewGameState(m, cfg, testutil.NopLogger())
	require.NoError(t, err)
	return gs
}

func TestNewGameStatePlacesCastles(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), config.DefaultGame())

	for _, team := range core.Teams {
		require.True(t, gs.CastleStanding(team))
		castle := gs.Buildings[team][gs.CastleIDs[team]]
		require.NotNil(t, castle)
		assert.Equal(t, core.MainCastle, castle.Kind)
		assert.Equal(t, gs.Map.CastleLoc(team), core.Coord{X: castle.X, Y: castle.Y})
		assert.False(t, gs.Occupancy.BuildingFree(castle.X, castle.Y))
	}

	assert.Equal(t, 10, gs.Balances[core.Blue])
	assert.Equal(t, 10, gs.Balances[core.Red])
}

func TestIDsAreUniqueAcrossUnitsAndBuildings(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(6, 6), testutil.RichGame())

	seen := map[int]bool{}
	collect := func(id int) {
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}
	for _, team := range core.Teams {
		collect(gs.CastleIDs[team])
	}

	u := gs.PlaceUnit(core.Blue, core.Warrior, 2, 2, 1)
	require.NotNil(t, u)
	collect(u.ID)

	b := gs.PlaceBuilding(core.Blue, core.Farm1, 3, 3, 1)
	require.NotNil(t, b)
	collect(b.ID)

	// Ids keep climbing even after deletion.
	gs.DeleteUnit(core.Blue, u.ID)
	u2 := gs.PlaceUnit(core.Blue, core.Warrior, 2, 2, 1)
	require.NotNil(t, u2)
	collect(u2.ID)
}

func TestPlaceUnitRespectsOccupancyAndTerrain(t *testing.T) {
	gs := newTestState(t, testutil.RiverMap(), testutil.RichGame())

	u := gs.PlaceUnit(core.Blue, core.Warrior, 1, 1, 1)
	require.NotNil(t, u)
	assert.False(t, gs.Occupancy.UnitFree(1, 1))

	// Same tile refused, stacking is never allowed.
	assert.Nil(t, gs.PlaceUnit(core.Blue, core.Knight, 1, 1, 1))

	// Land unit on water refused, water unit accepted.
	assert.Nil(t, gs.PlaceUnit(core.Blue, core.Warrior, 3, 1, 1))
	assert.NotNil(t, gs.PlaceUnit(core.Blue, core.Sailor, 3, 1, 1))
}

func TestPlaceBuildingNeverCreatesCastle(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), testutil.RichGame())
	assert.Nil(t, gs.PlaceBuilding(core.Blue, core.MainCastle, 2, 2, 1))
}

func TestDamageUnitDeletesAtZero(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), testutil.RichGame())
	u := gs.PlaceUnit(core.Red, core.Knight, 2, 2, 1)
	require.NotNil(t, u)

	died, err := gs.DamageUnit(u.ID, 4)
	require.NoError(t, err)
	assert.False(t, died)
	assert.Equal(t, 6, u.Health)

	died, err = gs.DamageUnit(u.ID, 6)
	require.NoError(t, err)
	assert.True(t, died)
	assert.Nil(t, gs.UnitByID(u.ID))
	assert.True(t, gs.Occupancy.UnitFree(2, 2))
}

func TestDamageRejectsNegativeAmount(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), testutil.RichGame())
	u := gs.PlaceUnit(core.Red, core.Knight, 2, 2, 1)
	require.NotNil(t, u)

	_, err := gs.DamageUnit(u.ID, -1)
	assert.ErrorIs(t, err, core.ErrNegativeDamage)
	_, err = gs.DamageBuilding(gs.CastleIDs[core.Blue], -1)
	assert.ErrorIs(t, err, core.ErrNegativeDamage)
}

func TestSellUnitThresholdAndRefund(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), config.DefaultGame())
	u := gs.PlaceUnit(core.Blue, core.Swordsman, 2, 2, 1) // cost 4, health 10
	require.NotNil(t, u)
	before := gs.Balances[core.Blue]

	// 7/10 is under the 75% threshold.
	u.Health = 7
	assert.False(t, gs.SellUnit(core.Blue, u.ID))

	// Exactly 75% qualifies; refund is floor(4 * 0.5) = 2.
	u.Health = 8
	assert.True(t, gs.SellUnit(core.Blue, u.ID))
	assert.Equal(t, before+2, gs.Balances[core.Blue])
	assert.Nil(t, gs.UnitByID(u.ID))
	assert.True(t, gs.Occupancy.UnitFree(2, 2))
}

func TestSellBuildingExemptsCastle(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), testutil.RichGame())
	assert.False(t, gs.SellBuilding(core.Blue, gs.CastleIDs[core.Blue]))
	assert.True(t, gs.CastleStanding(core.Blue))

	b := gs.PlaceBuilding(core.Blue, core.Farm1, 2, 2, 1) // cost 3
	require.NotNil(t, b)
	before := gs.Balances[core.Blue]
	assert.True(t, gs.SellBuilding(core.Blue, b.ID))
	assert.Equal(t, before+1, gs.Balances[core.Blue])
}

func TestStartTurnResetsAllowancesAndPaysIncome(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), config.DefaultGame())
	u := gs.PlaceUnit(core.Blue, core.Warrior, 2, 2, 1)
	require.NotNil(t, u)
	assert.Zero(t, u.ActionsLeft)
	assert.Zero(t, u.MovementLeft)

	farm := gs.PlaceBuilding(core.Blue, core.Farm1, 3, 3, 1)
	require.NotNil(t, farm)

	blueBefore, redBefore := gs.Balances[core.Blue], gs.Balances[core.Red]
	gs.StartTurn()

	assert.Equal(t, 1, gs.Turn)
	assert.Equal(t, 1, u.ActionsLeft)
	assert.Equal(t, 1, u.MovementLeft)
	// Blue has a farm: passive 1 + farm 1. Red: passive only.
	assert.Equal(t, blueBefore+2, gs.Balances[core.Blue])
	assert.Equal(t, redBefore+1, gs.Balances[core.Red])
}

func TestRelocateUnitKeepsOccupancyInLockstep(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), testutil.RichGame())
	u := gs.PlaceUnit(core.Blue, core.Warrior, 2, 2, 1)
	require.NotNil(t, u)

	require.True(t, gs.RelocateUnit(u, 3, 2))
	assert.True(t, gs.Occupancy.UnitFree(2, 2))
	assert.False(t, gs.Occupancy.UnitFree(3, 2))
	assert.Equal(t, 3, u.X)

	assert.False(t, gs.RelocateUnit(u, 9, 9))
}

func TestTotalValueCountsEverything(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(6, 6), config.DefaultGame())

	// Castle costs 0, so the starting value is just the balance.
	assert.Equal(t, 10, gs.TotalValue(core.Blue))

	u := gs.PlaceUnit(core.Blue, core.Swordsman, 2, 2, 1) // cost 4
	require.NotNil(t, u)
	b := gs.PlaceBuilding(core.Blue, core.Farm1, 3, 3, 1) // cost 3
	require.NotNil(t, b)

	// Placement via GameState does not debit; value is balance + costs.
	assert.Equal(t, 10+4+3, gs.TotalValue(core.Blue))
	assert.Equal(t, 10, gs.TotalValue(core.Red))
}

func TestCastleHealthAfterDestruction(t *testing.T) {
	gs := newTestState(t, testutil.GrassMap(5, 5), config.DefaultGame())
	assert.Equal(t, 30, gs.CastleHealth(core.Red))

	destroyed, err := gs.DamageBuilding(gs.CastleIDs[core.Red], 30)
	require.NoError(t, err)
	assert.True(t, destroyed)
	assert.False(t, gs.CastleStanding(core.Red))
	assert.Zero(t, gs.CastleHealth(core.Red))
}
