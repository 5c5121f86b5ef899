package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/castlewars/engine/internal/config"
	"github.com/castlewars/engine/internal/game/core"
	"github.com/castlewars/engine/internal/game/events"
	"github.com/castlewars/engine/internal/game/rules"
	"github.com/castlewars/engine/internal/game/states"
	"github.com/castlewars/engine/internal/replay"
)

// Agent is one side's decision maker. PlayTurn is invoked once per turn
// with a gateway bound to the agent's team; the agent issues as many
// actions through it as its allowances and time pool permit, then
// returns.
type Agent interface {
	PlayTurn(gw *Gateway)
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(gw *Gateway)

func (f AgentFunc) PlayTurn(gw *Gateway) { f(gw) }

// Runner drives one match end to end: upkeep, the two time-boxed agent
// callbacks in fixed order, termination checks and per-turn snapshots.
// All world mutation happens on the Runner's goroutine or inside an agent
// callback it is blocked on, so the engine needs no locking.
type Runner struct {
	gs      *GameState
	combat  *CombatResolver
	machine *states.Machine
	bus     *events.Bus
	rec     *replay.Recorder
	win     *rules.WinDeterminer

	agents    map[core.Team]Agent
	forfeited map[core.Team]bool

	cfg    config.GameConfig
	logger zerolog.Logger
}

// NewRunner wires a match together. bus may be nil when nothing listens.
func NewRunner(gs *GameState, agents map[core.Team]Agent, bus *events.Bus, logger zerolog.Logger) *Runner {
	if bus == nil {
		bus = events.NewBus(logger)
	}
	rec := replay.NewRecorder(mapRecord(gs.Map))
	return &Runner{
		gs:        gs,
		combat:    NewCombatResolver(gs, logger),
		machine:   states.NewMachine(rec.GameID(), bus, logger),
		bus:       bus,
		rec:       rec,
		win:       rules.NewWinDeterminer(gs),
		agents:    agents,
		forfeited: map[core.Team]bool{},
		cfg:       gs.Rules(),
		logger:    logger.With().Str("component", "Runner").Str("game_id", rec.GameID()).Logger(),
	}
}

// GameID returns the match's uuid, shared with its replay.
func (r *Runner) GameID() string { return r.rec.GameID() }

// Recorder exposes the replay recording for writing or archiving after
// Run returns.
func (r *Runner) Recorder() *replay.Recorder { return r.rec }

// Phase returns the current phase of the match.
func (r *Runner) Phase() states.Phase { return r.machine.Current() }

// Forfeited reports whether a team has forfeited.
func (r *Runner) Forfeited(team core.Team) bool { return r.forfeited[team] }

// Run plays the match to completion and returns the outcome. Blue always
// acts first within a turn. A missing agent aborts the match as a draw
// before any turn is played.
func (r *Runner) Run() rules.Outcome {
	if r.agents[core.Blue] == nil || r.agents[core.Red] == nil {
		r.logger.Error().Msg("missing agent, aborting match")
		outcome := rules.DrawOutcome(rules.ReasonInitFailure)
		r.finish(outcome, "missing agent")
		return outcome
	}

	r.bus.Publish(events.NewGameStartedEvent(r.GameID(), r.gs.Map.W, r.gs.Map.H))

	for {
		r.transition(states.PhaseUpkeep, "next turn")
		r.gs.StartTurn()
		r.bus.Publish(events.NewTurnStartedEvent(r.GameID(), r.gs.Turn))

		r.transition(states.PhaseActFirst, "first mover acts")
		r.invokeAgent(core.Blue)

		// The first mover may have already decided the game by razing a
		// castle; the second mover only acts while it is still live. A
		// first-mover forfeit does not skip the second mover, so both
		// sides can forfeit within one turn.
		if _, decided := r.win.CheckCastles(); !decided {
			r.transition(states.PhaseActSecond, "second mover acts")
			r.invokeAgent(core.Red)
		}

		r.transition(states.PhaseTerminationCheck, "turn complete")
		r.bus.Publish(events.NewTurnEndedEvent(r.GameID(), r.gs.Turn))
		outcome, done := r.checkTermination()

		r.transition(states.PhaseSnapshot, "record turn")
		snap := r.snapshot()
		r.rec.RecordTurn(snap)
		r.bus.Publish(events.NewTurnSnapshotEvent(r.GameID(), snap))

		if done {
			r.finish(outcome, string(outcome.Reason))
			return outcome
		}
	}
}

// checkTermination applies the end-of-turn cascade: castle destruction,
// then forfeits, then the turn limit.
func (r *Runner) checkTermination() (rules.Outcome, bool) {
	if outcome, done := r.win.CheckCastles(); done {
		return outcome, true
	}
	if r.forfeited[core.Blue] || r.forfeited[core.Red] {
		return r.win.ResolveForfeit(r.forfeited), true
	}
	if r.cfg.MaxTurns > 0 && r.gs.Turn >= r.cfg.MaxTurns {
		return r.win.ResolveAtTurnLimit(), true
	}
	return rules.Outcome{}, false
}

// invokeAgent runs one team's callback against its remaining time pool.
// The callback runs on its own goroutine; if it has not returned when the
// pool drains, the team forfeits with its pool zeroed and the stray
// goroutine is abandoned rather than joined. An abandoned callback still
// holds a live gateway, so it can race the engine's later reads and
// writes; that unsynchronized access is a known, tolerated hazard of
// never blocking the match on a hung agent, not a safe state. A
// panicking callback also forfeits. A callback that returns in time is
// charged its elapsed wall time; the per-turn increment is credited at
// upkeep.
func (r *Runner) invokeAgent(team core.Team) {
	if r.forfeited[team] {
		return
	}
	budget := r.gs.TimeLeft[team]
	if budget <= 0 {
		r.forfeit(team, "time pool exhausted")
		return
	}

	gw := NewGateway(team, r.gs, r.combat, r.logger)

	var panicked bool
	done := make(chan struct{})
	start := time.Now()
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				panicked = true
				r.logger.Error().
					Stringer("team", team).
					Interface("panic", rec).
					Msg("agent panicked")
			}
			close(done)
		}()
		r.agents[team].PlayTurn(gw)
	}()

	select {
	case <-done:
		elapsed := time.Since(start)
		if elapsed >= budget {
			r.gs.TimeLeft[team] = 0
			r.forfeit(team, "time pool exhausted")
			return
		}
		r.gs.TimeLeft[team] = budget - elapsed
		if panicked {
			r.forfeit(team, "agent panic")
		}
	case <-time.After(budget):
		r.gs.TimeLeft[team] = 0
		r.forfeit(team, "time pool exhausted")
	}
}

func (r *Runner) forfeit(team core.Team, reason string) {
	if r.forfeited[team] {
		return
	}
	r.forfeited[team] = true
	r.logger.Warn().Stringer("team", team).Str("reason", reason).Msg("team forfeited")
	r.bus.Publish(events.NewTeamForfeitedEvent(r.GameID(), team, r.gs.Turn, reason))
}

// finish records the outcome, moves to GameOver and publishes the end
// event.
func (r *Runner) finish(outcome rules.Outcome, reason string) {
	res := replay.ResultRecord{Draw: outcome.Draw, Reason: string(outcome.Reason)}
	winner := "NONE"
	if !outcome.Draw {
		winner = outcome.Winner.String()
	}
	res.Winner = winner
	r.rec.SetResult(res)

	r.transition(states.PhaseGameOver, reason)
	r.bus.Publish(events.NewGameEndedEvent(r.GameID(), winner, reason, r.gs.Turn))
	r.logger.Info().
		Str("winner", winner).
		Str("reason", reason).
		Int("turns", r.gs.Turn).
		Msg("match finished")
}

// transition moves the phase machine. The Runner only ever requests legal
// transitions, so a failure here is an engine bug worth logging loudly.
func (r *Runner) transition(target states.Phase, reason string) {
	if err := r.machine.TransitionTo(target, reason); err != nil {
		r.logger.Error().Err(err).Stringer("target", target).Msg("phase transition rejected")
	}
}

// snapshot captures the world at the end of the current turn.
func (r *Runner) snapshot() replay.TurnRecord {
	teams := make(map[string]replay.TeamRecord, len(core.Teams))
	for _, team := range core.Teams {
		tr := replay.TeamRecord{
			Balance:              r.gs.Balances[team],
			TimeRemainingSeconds: r.gs.TimeLeft[team].Seconds(),
			Forfeited:            r.forfeited[team],
			Units:                []replay.UnitRecord{},
			Buildings:            []replay.BuildingRecord{},
		}
		for _, id := range sortedUnitIDs(r.gs.Units[team]) {
			u := r.gs.Units[team][id]
			tr.Units = append(tr.Units, replay.UnitRecord{
				ID: u.ID, Kind: string(u.Kind), X: u.X, Y: u.Y,
				Health: u.Health, Damage: u.Damage, Defense: u.Defense,
				ActionsRemaining: u.ActionsLeft, MovementRemaining: u.MovementLeft,
				Level: u.Level,
			})
		}
		for _, id := range sortedBuildingIDs(r.gs.Buildings[team]) {
			b := r.gs.Buildings[team][id]
			tr.Buildings = append(tr.Buildings, replay.BuildingRecord{
				ID: b.ID, Kind: string(b.Kind), X: b.X, Y: b.Y, Health: b.Health,
				ActionsRemaining: b.ActionsLeft, Level: b.Level,
			})
		}
		teams[team.String()] = tr
	}
	return replay.TurnRecord{Turn: r.gs.Turn, Teams: teams}
}

// mapRecord renders the board for the replay header, rows top to bottom,
// one terrain name per cell.
func mapRecord(m *core.WorldMap) replay.MapRecord {
	rows := make([][]string, 0, m.H)
	for y := m.H - 1; y >= 0; y-- {
		row := make([]string, m.W)
		for x := 0; x < m.W; x++ {
			t, _ := m.TerrainAt(x, y)
			row[x] = t.String()
		}
		rows = append(rows, row)
	}
	return replay.MapRecord{Width: m.W, Height: m.H, Terrain: rows}
}
