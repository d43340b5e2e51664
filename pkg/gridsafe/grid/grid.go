// Package grid holds the coordinate primitives shared by the knowledge
// base, the planner and the environment. Coordinates are 1-based: (1,1)
// is the loading-dock corner where every episode starts.
package grid

// Cell identifies one floor square. X is the column, Y the row.
type Cell struct {
	X int
	Y int
}

// In reports whether the cell lies inside a width×height grid.
func (c Cell) In(width, height int) bool {
	return c.X >= 1 && c.X <= width && c.Y >= 1 && c.Y <= height
}

// Less orders cells by row, then column. All tie-breaking in the
// planner and the classifier uses this ordering so runs are
// reproducible.
func (c Cell) Less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Manhattan returns the L1 distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Neighbors returns the cardinal neighbors of c clipped to the grid
// bounds. Edge and corner cells have fewer than four; there is no
// wraparound. The order is fixed: lower row first, then lower column.
func (c Cell) Neighbors(width, height int) []Cell {
	candidates := [4]Cell{
		{c.X, c.Y - 1},
		{c.X - 1, c.Y},
		{c.X + 1, c.Y},
		{c.X, c.Y + 1},
	}
	out := make([]Cell, 0, 4)
	for _, n := range candidates {
		if n.In(width, height) {
			out = append(out, n)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
