package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainMovementCost(t *testing.T) {
	tests := []struct {
		terrain Terrain
		cost    int
	}{
		{Grass, 1},
		{Mountain, 2},
		{Sand, 2},
		{Water, 1},
		{Bridge, 1},
	}
	for _, tt := range tests {
		t.Run(tt.terrain.String(), func(t *testing.T) {
			assert.Equal(t, tt.cost, tt.terrain.MovementCost())
		})
	}
}

func TestTerrainSymbolRoundTrip(t *testing.T) {
	for _, terrain := range AllTerrain {
		got, err := ParseSymbol(terrain.Symbol())
		require.NoError(t, err)
		assert.Equal(t, terrain, got)
	}
}

func TestParseSymbolUnknown(t *testing.T) {
	_, err := ParseSymbol('X')
	assert.ErrorIs(t, err, ErrUnknownTerrain)
}

func TestParseTerrainRoundTrip(t *testing.T) {
	for _, terrain := range AllTerrain {
		got, err := ParseTerrain(terrain.String())
		require.NoError(t, err)
		assert.Equal(t, terrain, got)
	}
}

func TestTerrainSetContains(t *testing.T) {
	assert.True(t, WalkableLand.Contains(Bridge))
	assert.False(t, WalkableLand.Contains(Water))
	assert.True(t, WalkableWater.Contains(Bridge))
	assert.False(t, WalkableWater.Contains(Grass))
	assert.False(t, LandTiles.Contains(Bridge))
}
