package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlewars/engine/internal/config"
	"github.com/castlewars/engine/internal/game/core"
	"github.com/castlewars/engine/internal/game/events"
	"github.com/castlewars/engine/internal/game/rules"
	"github.com/castlewars/engine/internal/game/states"
	"github.com/castlewars/engine/internal/testutil"
)

// rushAgent marches a single warrior at the enemy castle and batters it.
// Minimal on purpose; the bots package carries the full version.
func rushAgent(gw *Gateway) {
	castleID := gw.CastleID(gw.Team())
	if len(gw.Units(gw.Team())) == 0 {
		gw.SpawnUnit(core.Warrior, castleID)
		return
	}
	enemyCastleID := gw.CastleID(gw.EnemyTeam())
	enemyLoc := gw.MapCopy().CastleLoc(gw.EnemyTeam())
	for _, u := range gw.Units(gw.Team()) {
		if gw.CanUnitAttackBuilding(u.ID, enemyCastleID) {
			gw.UnitAttackBuilding(u.ID, enemyCastleID)
			continue
		}
		for _, d := range gw.PossibleMoveDirections(u.ID) {
			if d.IsStay() {
				continue
			}
			x, y := d.Offset(u.X, u.Y)
			if core.Chebyshev(x, y, enemyLoc.X, enemyLoc.Y) < core.Chebyshev(u.X, u.Y, enemyLoc.X, enemyLoc.Y) {
				gw.MoveUnit(u.ID, d)
				break
			}
		}
	}
}

func idleAgent(*Gateway) {}

func newRunnerFixture(t *testing.T, m *core.WorldMap, cfg config.GameConfig, blue, red Agent) *Runner {
	t.Helper()
	gs, err := NewGameState(m, cfg, testutil.NopLogger())
	require.NoError(t, err)
	agents := map[core.Team]Agent{core.Blue: blue, core.Red: red}
	return NewRunner(gs, agents, events.NewBus(testutil.NopLogger()), testutil.NopLogger())
}

func TestRunRushVersusIdlerEndsInCastleKill(t *testing.T) {
	r := newRunnerFixture(t, testutil.TinyMap(), config.DefaultGame(),
		AgentFunc(rushAgent), AgentFunc(idleAgent))

	outcome := r.Run()

	assert.False(t, outcome.Draw)
	assert.Equal(t, core.Blue, outcome.Winner)
	assert.Equal(t, rules.ReasonCastleDestroyed, outcome.Reason)
	assert.Equal(t, states.PhaseGameOver, r.Phase())

	// The replay agrees with the returned outcome, and its map header is
	// a per-cell terrain name grid.
	doc := r.Recorder().Document()
	assert.Equal(t, [][]string{{"GRASS", "GRASS", "GRASS"}}, doc.Map.Terrain)
	assert.Equal(t, "BLUE", doc.Result.Winner)
	assert.Equal(t, string(rules.ReasonCastleDestroyed), doc.Result.Reason)
	assert.NotEmpty(t, doc.Turns)

	// Final snapshot shows the red castle gone.
	last := doc.Turns[len(doc.Turns)-1]
	assert.Empty(t, last.Teams["RED"].Buildings)

	_, err := r.Recorder().Marshal()
	assert.NoError(t, err)
}

func TestRunSlowAgentForfeitsOnTimePool(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.InitialTimePoolSeconds = 0.05

	stall := AgentFunc(func(*Gateway) {
		time.Sleep(2 * time.Second)
	})
	r := newRunnerFixture(t, testutil.TinyMap(), cfg, stall, AgentFunc(idleAgent))

	start := time.Now()
	outcome := r.Run()

	assert.False(t, outcome.Draw)
	assert.Equal(t, core.Red, outcome.Winner)
	assert.Equal(t, rules.ReasonForfeit, outcome.Reason)
	assert.True(t, r.Forfeited(core.Blue))
	assert.False(t, r.Forfeited(core.Red))
	// The runner abandons the stalled goroutine instead of joining it.
	assert.Less(t, time.Since(start), time.Second)

	doc := r.Recorder().Document()
	require.NotEmpty(t, doc.Turns)
	last := doc.Turns[len(doc.Turns)-1]
	assert.True(t, last.Teams["BLUE"].Forfeited)
	assert.Zero(t, last.Teams["BLUE"].TimeRemainingSeconds)
}

func TestRunPanickingAgentForfeits(t *testing.T) {
	boom := AgentFunc(func(*Gateway) {
		panic("bad agent")
	})
	r := newRunnerFixture(t, testutil.TinyMap(), config.DefaultGame(),
		boom, AgentFunc(idleAgent))

	outcome := r.Run()

	assert.Equal(t, core.Red, outcome.Winner)
	assert.Equal(t, rules.ReasonForfeit, outcome.Reason)
	assert.True(t, r.Forfeited(core.Blue))
}

func TestRunDoubleForfeitFallsThroughCascade(t *testing.T) {
	boom := AgentFunc(func(*Gateway) {
		panic("bad agent")
	})
	r := newRunnerFixture(t, testutil.TinyMap(), config.DefaultGame(), boom, boom)

	outcome := r.Run()

	// Both sides forfeited in the same turn; identical worlds fall all the
	// way to the second-mover tiebreak.
	assert.True(t, r.Forfeited(core.Blue))
	assert.True(t, r.Forfeited(core.Red))
	assert.Equal(t, core.Red, outcome.Winner)
	assert.Equal(t, rules.ReasonSecondMover, outcome.Reason)
}

func TestRunMissingAgentIsInitFailureDraw(t *testing.T) {
	gs, err := NewGameState(testutil.TinyMap(), config.DefaultGame(), testutil.NopLogger())
	require.NoError(t, err)
	r := NewRunner(gs, map[core.Team]Agent{core.Blue: AgentFunc(idleAgent)}, nil, testutil.NopLogger())

	outcome := r.Run()

	assert.True(t, outcome.Draw)
	assert.Equal(t, rules.ReasonInitFailure, outcome.Reason)
	assert.Equal(t, states.PhaseGameOver, r.Phase())
	assert.Empty(t, r.Recorder().Document().Turns)
}

func TestRunTurnLimitFallsToSecondMover(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.MaxTurns = 3

	r := newRunnerFixture(t, testutil.TinyMap(), cfg,
		AgentFunc(idleAgent), AgentFunc(idleAgent))

	outcome := r.Run()

	// Identical castles and identical economies: the second mover takes
	// the tiebreak.
	assert.Equal(t, core.Red, outcome.Winner)
	assert.Equal(t, rules.ReasonSecondMover, outcome.Reason)
	assert.Len(t, r.Recorder().Document().Turns, 3)
}

func TestRunChargesTimeAndCreditsIncrement(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.MaxTurns = 2

	r := newRunnerFixture(t, testutil.TinyMap(), cfg,
		AgentFunc(idleAgent), AgentFunc(idleAgent))
	r.Run()

	for _, team := range core.Teams {
		left := r.gs.TimeLeft[team]
		assert.Positive(t, left)
		// Two instant turns cost almost nothing and earn two increments.
		assert.InDelta(t, cfg.InitialTimePool().Seconds()+2*cfg.TimeIncrement().Seconds(),
			left.Seconds(), 0.05)
	}
}

func TestRunPublishesLifecycleEvents(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.MaxTurns = 2

	bus := events.NewBus(testutil.NopLogger())
	var seen []string
	bus.SubscribeAll([]string{
		events.TypeGameStarted,
		events.TypeTurnStarted,
		events.TypeTurnEnded,
		events.TypeTurnSnapshot,
		events.TypeGameEnded,
	}, func(e events.Event) {
		seen = append(seen, e.Type())
	})

	gs, err := NewGameState(testutil.TinyMap(), cfg, testutil.NopLogger())
	require.NoError(t, err)
	r := NewRunner(gs, map[core.Team]Agent{
		core.Blue: AgentFunc(idleAgent),
		core.Red:  AgentFunc(idleAgent),
	}, bus, testutil.NopLogger())
	r.Run()

	assert.Equal(t, []string{
		events.TypeGameStarted,
		events.TypeTurnStarted, events.TypeTurnEnded, events.TypeTurnSnapshot,
		events.TypeTurnStarted, events.TypeTurnEnded, events.TypeTurnSnapshot,
		events.TypeGameEnded,
	}, seen)
}
