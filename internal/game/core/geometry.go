package core

// Chebyshev returns the chessboard distance between two grid cells: the
// minimum number of king moves from (x1, y1) to (x2, y2). All range and
// area checks in the game use this metric.
func Chebyshev(x1, y1, x2, y2 int) int {
	dx := abs(x1 - x2)
	dy := abs(y1 - y2)
	if dx > dy {
		return dx
	}
	return dy
}

// WithinChebyshev reports whether the Chebyshev distance between two cells
// is at most radius.
func WithinChebyshev(x1, y1, x2, y2, radius int) bool {
	return Chebyshev(x1, y1, x2, y2) <= radius
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
