package core

// Direction is one of the eight compass directions plus Stay. Units move
// like a chess king, one tile at a time.
type Direction struct {
	DX, DY int
}

var (
	Up        = Direction{0, 1}
	Down      = Direction{0, -1}
	Left      = Direction{-1, 0}
	Right     = Direction{1, 0}
	UpLeft    = Direction{-1, 1}
	UpRight   = Direction{1, 1}
	DownLeft  = Direction{-1, -1}
	DownRight = Direction{1, -1}
	Stay      = Direction{0, 0}
)

// Directions lists every legal movement direction, Stay included.
var Directions = []Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight, Stay}

// Offset applies the direction's unit displacement to (x, y).
func (d Direction) Offset(x, y int) (int, int) {
	return x + d.DX, y + d.DY
}

func (d Direction) IsStay() bool {
	return d.DX == 0 && d.DY == 0
}
