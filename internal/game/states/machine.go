package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/castlewars/engine/internal/game/events"
)

// Transition is one recorded phase change.
type Transition struct {
	From      Phase
	To        Phase
	Timestamp time.Time
	Reason    string
}

// Machine tracks the current phase, validates transitions against the
// phase graph, records history and mirrors every transition onto the
// event bus.
type Machine struct {
	mu             sync.RWMutex
	gameID         string
	current        Phase
	history        []Transition
	maxHistorySize int
	bus            *events.Bus
	logger         zerolog.Logger
}

// NewMachine creates a machine in PhaseInitializing. bus may be nil.
func NewMachine(gameID string, bus *events.Bus, logger zerolog.Logger) *Machine {
	return &Machine{
		gameID:         gameID,
		current:        PhaseInitializing,
		history:        make([]Transition, 0, 64),
		maxHistorySize: 4096,
		bus:            bus,
		logger:         logger.With().Str("component", "PhaseMachine").Str("game_id", gameID).Logger(),
	}
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// TransitionTo moves to the target phase, or errors if the phase graph
// forbids it.
func (m *Machine) TransitionTo(target Phase, reason string) error {
	m.mu.Lock()

	if !m.current.CanTransitionTo(target) {
		from := m.current
		m.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}

	from := m.current
	m.current = target
	m.record(Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason})
	m.mu.Unlock()

	m.logger.Debug().
		Stringer("from", from).
		Stringer("to", target).
		Str("reason", reason).
		Msg("phase transition")

	if m.bus != nil {
		m.bus.Publish(events.NewPhaseTransitionEvent(m.gameID, from.String(), target.String(), reason))
	}
	return nil
}

// record appends to history, trimming the oldest entries past the cap.
func (m *Machine) record(t Transition) {
	m.history = append(m.history, t)
	if len(m.history) > m.maxHistorySize {
		m.history = m.history[len(m.history)-m.maxHistorySize:]
	}
}

// History returns a copy of the transition history.
func (m *Machine) History() []Transition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}
