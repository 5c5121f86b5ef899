package core

import "fmt"

// Terrain is a map tile kind. Terrain is static per map, with one exception:
// an engineer can permanently convert a single Water tile to Bridge.
type Terrain int

const (
	Grass Terrain = iota
	Mountain
	Sand
	Water
	Bridge
)

// MovementCost returns the per-step cost a unit pays to enter a tile of
// this terrain.
func (t Terrain) MovementCost() int {
	switch t {
	case Mountain, Sand:
		return 2
	default:
		return 1
	}
}

func (t Terrain) String() string {
	switch t {
	case Grass:
		return "GRASS"
	case Mountain:
		return "MOUNTAIN"
	case Sand:
		return "SAND"
	case Water:
		return "WATER"
	case Bridge:
		return "BRIDGE"
	default:
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
}

// ParseTerrain converts a terrain name as it appears in replay documents
// back into a Terrain.
func ParseTerrain(s string) (Terrain, error) {
	switch s {
	case "GRASS":
		return Grass, nil
	case "MOUNTAIN":
		return Mountain, nil
	case "SAND":
		return Sand, nil
	case "WATER":
		return Water, nil
	case "BRIDGE":
		return Bridge, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
	}
}

// Symbol returns the single-character form used in map files
// terrain rows.
func (t Terrain) Symbol() byte {
	switch t {
	case Grass:
		return 'G'
	case Mountain:
		return 'M'
	case Sand:
		return 'S'
	case Water:
		return 'W'
	case Bridge:
		return 'B'
	default:
		return '?'
	}
}

// ParseSymbol converts a map file character back into a Terrain.
func ParseSymbol(c byte) (Terrain, error) {
	switch c {
	case 'G':
		return Grass, nil
	case 'M':
		return Mountain, nil
	case 'S':
		return Sand, nil
	case 'W':
		return Water, nil
	case 'B':
		return Bridge, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, string(c))
	}
}

// TerrainSet is a small allow-list of terrain kinds, used for archetype
// walkable/placeable checks.
type TerrainSet []Terrain

func (s TerrainSet) Contains(t Terrain) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// Common terrain sets shared by the archetype tables.
var (
	LandTiles      = TerrainSet{Grass, Sand}
	WalkableLand   = TerrainSet{Grass, Sand, Bridge}
	WalkableWater  = TerrainSet{Water, Bridge}
	AllTerrain     = TerrainSet{Grass, Mountain, Sand, Water, Bridge}
	EngineerTiles  = TerrainSet{Grass, Sand, Bridge, Water}
	WaterBuildable = TerrainSet{Water, Bridge}
)
