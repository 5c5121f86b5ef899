package core

// OccupancyIndex tracks, per tile, whether it is free for a new unit and
// independently whether it is free for a new building. It is kept in
// lockstep with the entity registry: every placement, move and deletion
// updates it, so it must mirror entity positions exactly at all times.
type OccupancyIndex struct {
	w, h         int
	unitFree     []bool
	buildingFree []bool
}

// NewOccupancyIndex creates an index with every tile free.
func NewOccupancyIndex(w, h int) *OccupancyIndex {
	idx := &OccupancyIndex{
		w: w, h: h,
		unitFree:     make([]bool, w*h),
		buildingFree: make([]bool, w*h),
	}
	for i := range idx.unitFree {
		idx.unitFree[i] = true
		idx.buildingFree[i] = true
	}
	return idx
}

func (o *OccupancyIndex) idx(x, y int) int { return y*o.w + x }

func (o *OccupancyIndex) inBounds(x, y int) bool {
	return x >= 0 && x < o.w && y >= 0 && y < o.h
}

// UnitFree reports whether a new unit may occupy (x, y).
func (o *OccupancyIndex) UnitFree(x, y int) bool {
	return o.inBounds(x, y) && o.unitFree[o.idx(x, y)]
}

// BuildingFree reports whether a new building may occupy (x, y).
func (o *OccupancyIndex) BuildingFree(x, y int) bool {
	return o.inBounds(x, y) && o.buildingFree[o.idx(x, y)]
}

// SetUnitFree marks (x, y) free or taken for units.
func (o *OccupancyIndex) SetUnitFree(x, y int, free bool) {
	if o.inBounds(x, y) {
		o.unitFree[o.idx(x, y)] = free
	}
}

// SetBuildingFree marks (x, y) free or taken for buildings.
func (o *OccupancyIndex) SetBuildingFree(x, y int, free bool) {
	if o.inBounds(x, y) {
		o.buildingFree[o.idx(x, y)] = free
	}
}

// UnitFreeGrid returns a copy of the unit occupancy as a [x][y] grid, the
// shape agents consume.
func (o *OccupancyIndex) UnitFreeGrid() [][]bool {
	return o.grid(o.unitFree)
}

// BuildingFreeGrid returns a copy of the building occupancy as a [x][y]
// grid.
func (o *OccupancyIndex) BuildingFreeGrid() [][]bool {
	return o.grid(o.buildingFree)
}

func (o *OccupancyIndex) grid(src []bool) [][]bool {
	g := make([][]bool, o.w)
	for x := 0; x < o.w; x++ {
		g[x] = make([]bool, o.h)
		for y := 0; y < o.h; y++ {
			g[x][y] = src[o.idx(x, y)]
		}
	}
	return g
}
