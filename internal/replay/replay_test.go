package replay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecorder() *Recorder {
	rec := NewRecorder(MapRecord{
		Width:  3,
		Height: 2,
		Terrain: [][]string{
			{"GRASS", "WATER", "GRASS"},
			{"GRASS", "GRASS", "GRASS"},
		},
	})
	rec.RecordTurn(TurnRecord{
		Turn: 1,
		Teams: map[string]TeamRecord{
			"BLUE": {
				Balance:              11,
				TimeRemainingSeconds: 9.99,
				Units:                []UnitRecord{{ID: 2, Kind: "WARRIOR", X: 0, Y: 0, Health: 10, Damage: 2, Defense: 2, ActionsRemaining: 1, MovementRemaining: 1, Level: 1}},
				Buildings:            []BuildingRecord{{ID: 0, Kind: "MAIN_CASTLE", X: 0, Y: 0, Health: 30, ActionsRemaining: 1, Level: 1}},
			},
			"RED": {
				Balance:              11,
				TimeRemainingSeconds: 10.0,
				Units:                []UnitRecord{},
				Buildings:            []BuildingRecord{{ID: 1, Kind: "MAIN_CASTLE", X: 2, Y: 1, Health: 30, ActionsRemaining: 1, Level: 1}},
			},
		},
	})
	rec.SetResult(ResultRecord{Winner: "BLUE", Draw: false, Reason: "castle_destroyed"})
	return rec
}

func TestRecorderAssignsUniqueIDs(t *testing.T) {
	a := NewRecorder(MapRecord{Width: 1, Height: 1, Terrain: [][]string{{"GRASS"}}})
	b := NewRecorder(MapRecord{Width: 1, Height: 1, Terrain: [][]string{{"GRASS"}}})
	assert.NotEmpty(t, a.GameID())
	assert.NotEqual(t, a.GameID(), b.GameID())
}

func TestMarshalProducesSchemaValidJSON(t *testing.T) {
	data, err := sampleRecorder().Marshal()
	require.NoError(t, err)
	assert.NoError(t, Validate(data))
}

func TestValidateRejectsBrokenDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"missing result", `{"id":"x","recorded_at":"t","map":{"width":1,"height":1,"terrain":[["GRASS"]]},"turns":[]}`},
		{"terrain not a name grid", `{"id":"x","recorded_at":"t","map":{"width":1,"height":1,"terrain":[["G"]]},"turns":[],"result":{"winner":"NONE","draw":true,"reason":"x"}}`},
		{"bad turn number", `{"id":"x","recorded_at":"t","map":{"width":1,"height":1,"terrain":[["GRASS"]]},"turns":[{"turn":0,"teams":{"BLUE":{"balance":0,"time_remaining_seconds":0,"units":[],"buildings":[]},"RED":{"balance":0,"time_remaining_seconds":0,"units":[],"buildings":[]}}}],"result":{"winner":"NONE","draw":true,"reason":"x"}}`},
		{"missing team", `{"id":"x","recorded_at":"t","map":{"width":1,"height":1,"terrain":[["GRASS"]]},"turns":[{"turn":1,"teams":{"BLUE":{"balance":0,"time_remaining_seconds":0,"units":[],"buildings":[]}}}],"result":{"winner":"NONE","draw":true,"reason":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate([]byte(tt.data)))
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		rec := sampleRecorder()
		path := filepath.Join(dir, "match.json")
		require.NoError(t, WriteFile(rec, path, false))

		doc, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rec.GameID(), doc.ID)
		assert.Equal(t, "BLUE", doc.Result.Winner)
		require.Len(t, doc.Turns, 1)
		assert.Equal(t, 11, doc.Turns[0].Teams["BLUE"].Balance)
	})

	t.Run("gzip by extension", func(t *testing.T) {
		rec := sampleRecorder()
		path := filepath.Join(dir, "match.json.gz")
		require.NoError(t, WriteFile(rec, path, false))

		doc, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rec.GameID(), doc.ID)
	})
}

func TestStoreSaveLoadList(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	rec := sampleRecorder()
	require.NoError(t, store.Save(ctx, rec))

	// Same id twice is refused.
	assert.Error(t, store.Save(ctx, rec))

	doc, err := store.Load(ctx, rec.GameID())
	require.NoError(t, err)
	assert.Equal(t, rec.GameID(), doc.ID)
	assert.Equal(t, "BLUE", doc.Result.Winner)

	other := sampleRecorder()
	require.NoError(t, store.Save(ctx, other))

	list, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, sum := range list {
		assert.Equal(t, 1, sum.Turns)
		assert.Equal(t, "castle_destroyed", sum.Reason)
	}

	_, err = store.Load(ctx, "nope")
	assert.Error(t, err)
}
