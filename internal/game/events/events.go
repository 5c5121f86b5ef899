package events

import (
	"time"

	"github.com/castlewars/engine/internal/game/core"
	"github.com/castlewars/engine/internal/replay"
)

// Event type strings. Handlers filter on these.
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeTeamForfeited   = "team.forfeited"
	TypePhaseTransition = "phase.transition"
	TypeTurnSnapshot    = "turn.snapshot"
)

// Event is implemented by everything published on the bus.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields every event shares.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

// GameStartedEvent fires once when a match begins.
type GameStartedEvent struct {
	BaseEvent
	MapWidth  int `json:"map_width"`
	MapHeight int `json:"map_height"`
}

func NewGameStartedEvent(gameID string, w, h int) GameStartedEvent {
	return GameStartedEvent{BaseEvent: newBase(TypeGameStarted, gameID), MapWidth: w, MapHeight: h}
}

// GameEndedEvent fires once when the match resolves.
type GameEndedEvent struct {
	BaseEvent
	Winner string `json:"winner"`
	Reason string `json:"reason"`
	Turns  int    `json:"turns"`
}

func NewGameEndedEvent(gameID, winner, reason string, turns int) GameEndedEvent {
	return GameEndedEvent{BaseEvent: newBase(TypeGameEnded, gameID), Winner: winner, Reason: reason, Turns: turns}
}

// TurnStartedEvent fires after upkeep, before either team acts.
type TurnStartedEvent struct {
	BaseEvent
	Turn int `json:"turn"`
}

func NewTurnStartedEvent(gameID string, turn int) TurnStartedEvent {
	return TurnStartedEvent{BaseEvent: newBase(TypeTurnStarted, gameID), Turn: turn}
}

// TurnEndedEvent fires after both teams have acted, before the
// termination check.
type TurnEndedEvent struct {
	BaseEvent
	Turn int `json:"turn"`
}

func NewTurnEndedEvent(gameID string, turn int) TurnEndedEvent {
	return TurnEndedEvent{BaseEvent: newBase(TypeTurnEnded, gameID), Turn: turn}
}

// TeamForfeitedEvent fires when a team exhausts its time pool or its
// agent panics.
type TeamForfeitedEvent struct {
	BaseEvent
	Team   core.Team `json:"team"`
	Turn   int       `json:"turn"`
	Reason string    `json:"reason"`
}

func NewTeamForfeitedEvent(gameID string, team core.Team, turn int, reason string) TeamForfeitedEvent {
	return TeamForfeitedEvent{BaseEvent: newBase(TypeTeamForfeited, gameID), Team: team, Turn: turn, Reason: reason}
}

// TurnSnapshotEvent carries the end-of-turn world snapshot, in the same
// shape the replay stores. Live consumers like the spectator feed get
// exactly what a replay viewer would see.
type TurnSnapshotEvent struct {
	BaseEvent
	Record replay.TurnRecord `json:"record"`
}

func NewTurnSnapshotEvent(gameID string, record replay.TurnRecord) TurnSnapshotEvent {
	return TurnSnapshotEvent{BaseEvent: newBase(TypeTurnSnapshot, gameID), Record: record}
}

// PhaseTransitionEvent fires on every state machine transition.
type PhaseTransitionEvent struct {
	BaseEvent
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

func NewPhaseTransitionEvent(gameID, from, to, reason string) PhaseTransitionEvent {
	return PhaseTransitionEvent{BaseEvent: newBase(TypePhaseTransition, gameID), From: from, To: to, Reason: reason}
}
