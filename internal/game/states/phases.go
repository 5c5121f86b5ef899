package states

import "fmt"

// Phase is one stage of the per-turn pipeline. A turn flows
// Upkeep -> ActFirst -> ActSecond -> TerminationCheck -> Snapshot, and
// Snapshot loops back to Upkeep until the termination check routes to
// GameOver instead.
type Phase int

const (
	// PhaseInitializing - world construction, agent setup
	PhaseInitializing Phase = iota

	// PhaseUpkeep - turn counter, allowance reset, income
	PhaseUpkeep

	// PhaseActFirst - the first mover's time-boxed callback
	PhaseActFirst

	// PhaseActSecond - the second mover's time-boxed callback
	PhaseActSecond

	// PhaseTerminationCheck - castle, forfeit and turn-limit checks
	PhaseTerminationCheck

	// PhaseSnapshot - replay record and spectator broadcast
	PhaseSnapshot

	// PhaseGameOver - final state, outcome fixed
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseUpkeep:
		return "Upkeep"
	case PhaseActFirst:
		return "ActFirst"
	case PhaseActSecond:
		return "ActSecond"
	case PhaseTerminationCheck:
		return "TerminationCheck"
	case PhaseSnapshot:
		return "Snapshot"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// IsTerminal reports whether the phase ends the game.
func (p Phase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanReceiveActions reports whether an agent callback is live in this
// phase.
func (p Phase) CanReceiveActions() bool {
	return p == PhaseActFirst || p == PhaseActSecond
}

// AllowedTransitions returns the phases this phase may move to.
func (p Phase) AllowedTransitions() []Phase {
	switch p {
	case PhaseInitializing:
		return []Phase{PhaseUpkeep, PhaseGameOver}
	case PhaseUpkeep:
		return []Phase{PhaseActFirst}
	case PhaseActFirst:
		return []Phase{PhaseActSecond, PhaseTerminationCheck}
	case PhaseActSecond:
		return []Phase{PhaseTerminationCheck}
	case PhaseTerminationCheck:
		return []Phase{PhaseSnapshot, PhaseGameOver}
	case PhaseSnapshot:
		return []Phase{PhaseUpkeep, PhaseGameOver}
	case PhaseGameOver:
		return nil
	default:
		return nil
	}
}

// CanTransitionTo checks whether a transition to target is allowed.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, next := range p.AllowedTransitions() {
		if next == target {
			return true
		}
	}
	return false
}
