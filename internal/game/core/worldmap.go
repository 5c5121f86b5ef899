package core

import "fmt"

// Coord is a grid cell position. (0, 0) is the bottom-left corner.
type Coord struct {
	X, Y int
}

// WorldMap is the terrain grid plus the two home castle locations fixed at
// load time. Terrain is immutable after load except for the bridge-building
// side effect, which goes through SetTerrain.
type WorldMap struct {
	W, H    int
	T       []Terrain // length W*H, row-major
	Castles [2]Coord  // indexed by Team
}

// NewWorldMap builds a map from a row-major terrain slice. The castle
// coordinates must be in bounds; passing invalid ones is collaborator
// misuse and aborts construction.
func NewWorldMap(w, h int, tiles []Terrain, blueCastle, redCastle Coord) (*WorldMap, error) {
	if w <= 0 || h <= 0 || len(tiles) != w*h {
		return nil, fmt.Errorf("%w: %dx%d grid with %d tiles", ErrMalformedMap, w, h, len(tiles))
	}
	m := &WorldMap{W: w, H: h, T: tiles, Castles: [2]Coord{Blue: blueCastle, Red: redCastle}}
	for _, c := range m.Castles {
		if !m.InBounds(c.X, c.Y) {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrCastleOutOfBounds, c.X, c.Y)
		}
	}
	return m, nil
}

// NewUniformMap builds a map filled with a single terrain kind. Handy for
// tests and fixtures.
func NewUniformMap(w, h int, t Terrain, blueCastle, redCastle Coord) (*WorldMap, error) {
	tiles := make([]Terrain, w*h)
	for i := range tiles {
		tiles[i] = t
	}
	return NewWorldMap(w, h, tiles, blueCastle, redCastle)
}

func (m *WorldMap) Idx(x, y int) int { return y*m.W + x }

func (m *WorldMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// TerrainAt returns the terrain at (x, y). Out-of-bounds lookups return
// false.
func (m *WorldMap) TerrainAt(x, y int) (Terrain, bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	return m.T[m.Idx(x, y)], true
}

// IsTerrain reports whether (x, y) is in bounds and of the given kind.
func (m *WorldMap) IsTerrain(x, y int, t Terrain) bool {
	got, ok := m.TerrainAt(x, y)
	return ok && got == t
}

// SetTerrain rewrites a single tile. The only caller in the engine is the
// bridge-building action; the mutation is global and irreversible.
func (m *WorldMap) SetTerrain(x, y int, t Terrain) bool {
	if !m.InBounds(x, y) {
		return false
	}
	m.T[m.Idx(x, y)] = t
	return true
}

// CastleLoc returns the fixed home castle coordinate for a team.
func (m *WorldMap) CastleLoc(team Team) Coord { return m.Castles[team] }

// Clone returns a deep copy. Gateways hand clones to agents so map reads
// can never observe in-progress mutation.
func (m *WorldMap) Clone() *WorldMap {
	tiles := make([]Terrain, len(m.T))
	copy(tiles, m.T)
	return &WorldMap{W: m.W, H: m.H, T: tiles, Castles: m.Castles}
}
