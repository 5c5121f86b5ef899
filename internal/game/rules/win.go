package rules

import "github.com/castlewars/engine/internal/game/core"

// Reason explains how an outcome was reached.
type Reason string

const (
	ReasonCastleDestroyed Reason = "castle_destroyed"
	ReasonForfeit         Reason = "forfeit"
	ReasonCastleHealth    Reason = "castle_health"
	ReasonEconomicValue   Reason = "economic_value"
	ReasonSecondMover     Reason = "second_mover_tiebreak"
	ReasonInitFailure     Reason = "init_failure"
)

// Outcome is the final result of a match.
type Outcome struct {
	// Winner is meaningful only when Draw is false.
	Winner core.Team
	Draw   bool
	Reason Reason
}

// Win builds a decided outcome.
func Win(team core.Team, reason Reason) Outcome {
	return Outcome{Winner: team, Reason: reason}
}

// DrawOutcome builds a drawn outcome.
func DrawOutcome(reason Reason) Outcome {
	return Outcome{Draw: true, Reason: reason}
}

// Scoreboard is the view of game state the win rules need. The game
// package's state implements it.
type Scoreboard interface {
	// CastleStanding reports whether the team's home castle still exists.
	CastleStanding(team core.Team) bool
	// CastleHealth is the castle's current health, zero once destroyed.
	CastleHealth(team core.Team) int
	// TotalValue is ledger balance plus archetype cost of all living
	// entities.
	TotalValue(team core.Team) int
}

// WinDeterminer applies the win cascade against a scoreboard.
type WinDeterminer struct {
	board Scoreboard
}

// NewWinDeterminer binds the rules to a scoreboard.
func NewWinDeterminer(board Scoreboard) *WinDeterminer {
	return &WinDeterminer{board: board}
}

// CheckCastles resolves the primary condition: a team whose castle is gone
// has lost. Both castles gone in the same resolution still ends the game,
// but the result comes from the tiebreak cascade (castle health ties at
// zero, so economic value and then the second-mover rule decide).
func (w *WinDeterminer) CheckCastles() (Outcome, bool) {
	blueDown := !w.board.CastleStanding(core.Blue)
	redDown := !w.board.CastleStanding(core.Red)
	switch {
	case blueDown && redDown:
		return w.resolveTiebreaks(), true
	case blueDown:
		return Win(core.Red, ReasonCastleDestroyed), true
	case redDown:
		return Win(core.Blue, ReasonCastleDestroyed), true
	}
	return Outcome{}, false
}

// ResolveAtTurnLimit decides a game that reached the turn limit: a lone
// destroyed castle decides outright, otherwise higher castle health wins,
// then higher total economic value, then the second mover takes the
// tiebreak.
func (w *WinDeterminer) ResolveAtTurnLimit() Outcome {
	if out, done := w.CheckCastles(); done {
		return out
	}
	return w.resolveTiebreaks()
}

// resolveTiebreaks runs the tail of the cascade: castle health, then
// economic value, then the second mover.
func (w *WinDeterminer) resolveTiebreaks() Outcome {
	blueHP, redHP := w.board.CastleHealth(core.Blue), w.board.CastleHealth(core.Red)
	if blueHP != redHP {
		if blueHP > redHP {
			return Win(core.Blue, ReasonCastleHealth)
		}
		return Win(core.Red, ReasonCastleHealth)
	}

	blueVal, redVal := w.board.TotalValue(core.Blue), w.board.TotalValue(core.Red)
	if blueVal != redVal {
		if blueVal > redVal {
			return Win(core.Blue, ReasonEconomicValue)
		}
		return Win(core.Red, ReasonEconomicValue)
	}

	return Win(core.Red, ReasonSecondMover)
}

// ResolveForfeit decides a game where one or both teams forfeited. A
// single forfeit hands the win to the opponent; a double forfeit falls
// through the turn-limit cascade.
func (w *WinDeterminer) ResolveForfeit(forfeited map[core.Team]bool) Outcome {
	switch {
	case forfeited[core.Blue] && forfeited[core.Red]:
		return w.ResolveAtTurnLimit()
	case forfeited[core.Blue]:
		return Win(core.Red, ReasonForfeit)
	case forfeited[core.Red]:
		return Win(core.Blue, ReasonForfeit)
	}
	return w.ResolveAtTurnLimit()
}
