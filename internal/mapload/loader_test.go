package mapload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlewars/engine/internal/game/core"
)

func TestFromRowsBuildsWorld(t *testing.T) {
	m, err := FromRows([]string{
		"GGWGG",
		"1GWG2",
		"GGBGG",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, m.W)
	assert.Equal(t, 3, m.H)

	// Top row in the file is the highest y.
	assert.True(t, m.IsTerrain(2, 2, core.Water))
	assert.True(t, m.IsTerrain(2, 0, core.Bridge))

	// Castle markers resolve to grass tiles at the marked coordinates.
	assert.Equal(t, core.Coord{X: 0, Y: 1}, m.CastleLoc(core.Blue))
	assert.Equal(t, core.Coord{X: 4, Y: 1}, m.CastleLoc(core.Red))
	assert.True(t, m.IsTerrain(0, 1, core.Grass))
	assert.True(t, m.IsTerrain(4, 1, core.Grass))
}

func TestFromRowsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged rows", []string{"1GG", "G2"}},
		{"unknown symbol", []string{"1XG2"}},
		{"missing blue castle", []string{"GG2G"}},
		{"missing red castle", []string{"1GGG"}},
		{"duplicate marker", []string{"11G2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
name: crossing
rows:
  - "GWG"
  - "1W2"
  - "GWG"
`)
	m, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, m.W)
	assert.True(t, m.IsTerrain(1, 1, core.Water))
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("rows: {not: a list}"))
	assert.ErrorIs(t, err, core.ErrMalformedMap)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: t\nrows:\n  - \"1G2\"\n"), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.W)
	assert.Equal(t, 1, m.H)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
