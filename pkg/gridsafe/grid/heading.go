package grid

// Heading is one of the four cardinal facing directions. North points
// toward increasing rows.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "invalid"
}

// Left returns the heading after one 90° counterclockwise turn.
func (h Heading) Left() Heading { return (h + 3) % 4 }

// Right returns the heading after one 90° clockwise turn.
func (h Heading) Right() Heading { return (h + 1) % 4 }

// Ahead returns the cell directly in front of c when facing h. The
// result may be out of bounds; callers clip it.
func (h Heading) Ahead(c Cell) Cell {
	switch h {
	case North:
		return Cell{c.X, c.Y + 1}
	case East:
		return Cell{c.X + 1, c.Y}
	case South:
		return Cell{c.X, c.Y - 1}
	default:
		return Cell{c.X - 1, c.Y}
	}
}

// HeadingBetween returns the heading that moves from one cell to an
// adjacent one. The second return is false when the cells are not
// cardinal neighbors.
func HeadingBetween(from, to Cell) (Heading, bool) {
	switch {
	case to.X == from.X && to.Y == from.Y+1:
		return North, true
	case to.X == from.X+1 && to.Y == from.Y:
		return East, true
	case to.X == from.X && to.Y == from.Y-1:
		return South, true
	case to.X == from.X-1 && to.Y == from.Y:
		return West, true
	}
	return North, false
}
