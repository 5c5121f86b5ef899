// Package mapload reads board definitions from YAML map files.
//
// A map file names the board and lists its terrain rows top to bottom,
// one character per tile: G grass, M mountain, S sand, W water, B bridge.
// The digits 1 and 2 mark the blue and red castle tiles; the tile itself
// is grass. Each marker must appear exactly once.
package mapload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/castlewars/engine/internal/game/core"
)

// File is the on-disk map document.
type File struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

const (
	blueCastleMark = '1'
	redCastleMark  = '2'
)

// Load reads and parses a map file.
func Load(path string) (*core.WorldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	return m, nil
}

// Parse builds a world map from map file contents.
func Parse(data []byte) (*core.WorldMap, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedMap, err)
	}
	return FromRows(f.Rows)
}

// FromRows builds a world map from terrain rows listed top to bottom.
func FromRows(rows []string) (*core.WorldMap, error) {
	h := len(rows)
	if h == 0 {
		return nil, fmt.Errorf("%w: no rows", core.ErrMalformedMap)
	}
	w := len(rows[0])
	if w == 0 {
		return nil, fmt.Errorf("%w: empty row", core.ErrMalformedMap)
	}

	tiles := make([]core.Terrain, w*h)
	castles := [2]core.Coord{{X: -1, Y: -1}, {X: -1, Y: -1}}

	for rowIdx, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d",
				core.ErrMalformedMap, rowIdx, len(row), w)
		}
		y := h - 1 - rowIdx
		for x := 0; x < w; x++ {
			c := row[x]
			switch c {
			case blueCastleMark, redCastleMark:
				team := core.Blue
				if c == redCastleMark {
					team = core.Red
				}
				if castles[team].X >= 0 {
					return nil, fmt.Errorf("%w: duplicate %s castle marker",
						core.ErrMalformedMap, team)
				}
				castles[team] = core.Coord{X: x, Y: y}
				tiles[y*w+x] = core.Grass
			default:
				t, err := core.ParseSymbol(c)
				if err != nil {
					return nil, fmt.Errorf("%w at row %d col %d",
						err, rowIdx, x)
				}
				tiles[y*w+x] = t
			}
		}
	}

	for _, team := range core.Teams {
		if castles[team].X < 0 {
			return nil, fmt.Errorf("%w: missing %s castle marker",
				core.ErrMalformedMap, team)
		}
	}

	return core.NewWorldMap(w, h, tiles, castles[core.Blue], castles[core.Red])
}
