package testutil

import (
	"github.com/castlewars/engine/internal/config"
	"github.com/castlewars/engine/internal/game/core"
)

// GrassMap builds a w x h all-grass board with the castles in opposite
// corners.
func GrassMap(w, h int) *core.WorldMap {
	m, err := core.NewUniformMap(w, h, core.Grass,
		core.Coord{X: 0, Y: 0},
		core.Coord{X: w - 1, Y: h - 1})
	if err != nil {
		panic("testutil: bad grass map: " + err.Error())
	}
	return m
}

// TinyMap is the smallest interesting board: 3x1 grass, castles at the
// ends with a single tile between them.
func TinyMap() *core.WorldMap {
	m, err := core.NewUniformMap(3, 1, core.Grass,
		core.Coord{X: 0, Y: 0},
		core.Coord{X: 2, Y: 0})
	if err != nil {
		panic("testutil: bad tiny map: " + err.Error())
	}
	return m
}

// RiverMap builds a 7x5 board split by a vertical water column at x=3,
// castles on opposite banks. Exercises water units, bridges and ports.
func RiverMap() *core.WorldMap {
	const w, h = 7, 5
	tiles := make([]core.Terrain, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := core.Grass
			if x == 3 {
				t = core.Water
			}
			tiles[y*w+x] = t
		}
	}
	m, err := core.NewWorldMap(w, h, tiles,
		core.Coord{X: 0, Y: 2},
		core.Coord{X: 6, Y: 2})
	if err != nil {
		panic("testutil: bad river map: " + err.Error())
	}
	return m
}

// RichGame returns default balance constants with a balance high enough
// to buy anything a test wants to place.
func RichGame() config.GameConfig {
	cfg := config.DefaultGame()
	cfg.StartingBalance = 1000
	return cfg
}
