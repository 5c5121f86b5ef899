// Package replay defines the match recording format: an append-only
// sequence of end-of-turn snapshots plus the final result, serialized as
// JSON. The package is format-only; the engine builds records, this
// package holds, validates, writes and archives them.
package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UnitRecord is one unit's state in a snapshot.
type UnitRecord struct {
	ID                int    `json:"id"`
	Kind              string `json:"kind"`
	X                 int    `json:"x"`
	Y                 int    `json:"y"`
	Health            int    `json:"health"`
	Damage            int    `json:"damage"`
	Defense           int    `json:"defense"`
	ActionsRemaining  int    `json:"actions_remaining"`
	MovementRemaining int    `json:"movement_remaining"`
	Level             int    `json:"level"`
}

// BuildingRecord is one building's state in a snapshot.
type BuildingRecord struct {
	ID               int    `json:"id"`
	Kind             string `json:"kind"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Health           int    `json:"health"`
	ActionsRemaining int    `json:"actions_remaining"`
	Level            int    `json:"level"`
}

// TeamRecord is one side of a snapshot.
type TeamRecord struct {
	Balance              int              `json:"balance"`
	TimeRemainingSeconds float64          `json:"time_remaining_seconds"`
	Forfeited            bool             `json:"forfeited"`
	Units                []UnitRecord     `json:"units"`
	Buildings            []BuildingRecord `json:"buildings"`
}

// TurnRecord is the world as it stood at the end of one turn.
type TurnRecord struct {
	Turn  int                   `json:"turn"`
	Teams map[string]TeamRecord `json:"teams"`
}

// MapRecord captures the board. Terrain rows are listed top to bottom,
// one terrain name per cell, so a replay renders the way a player sees
// it.
type MapRecord struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Terrain [][]string `json:"terrain"`
}

// ResultRecord is the final outcome.
type ResultRecord struct {
	Winner string `json:"winner"`
	Draw   bool   `json:"draw"`
	Reason string `json:"reason"`
}

// Document is a complete match recording.
type Document struct {
	ID         string       `json:"id"`
	RecordedAt time.Time    `json:"recorded_at"`
	Map        MapRecord    `json:"map"`
	Turns      []TurnRecord `json:"turns"`
	Result     ResultRecord `json:"result"`
}

// Recorder accumulates snapshots for one match.
type Recorder struct {
	doc Document
}

// NewRecorder starts a recording with a fresh uuid.
func NewRecorder(m MapRecord) *Recorder {
	return &Recorder{doc: Document{
		ID:         uuid.NewString(),
		RecordedAt: time.Now().UTC(),
		Map:        m,
		Turns:      []TurnRecord{},
	}}
}

// GameID returns the recording's uuid.
func (r *Recorder) GameID() string { return r.doc.ID }

// RecordTurn appends one end-of-turn snapshot.
func (r *Recorder) RecordTurn(t TurnRecord) {
	r.doc.Turns = append(r.doc.Turns, t)
}

// SetResult fixes the final outcome.
func (r *Recorder) SetResult(res ResultRecord) {
	r.doc.Result = res
}

// Document returns the finished recording.
func (r *Recorder) Document() *Document { return &r.doc }

// Marshal serializes and schema-validates the recording. A document that
// fails its own schema is an engine bug, surfaced here rather than at
// read time.
func (r *Recorder) Marshal() ([]byte, error) {
	data, err := json.Marshal(&r.doc)
	if err != nil {
		return nil, fmt.Errorf("marshal replay: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("replay failed schema validation: %w", err)
	}
	return data, nil
}
