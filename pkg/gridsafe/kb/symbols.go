package kb

import (
	"github.com/go-air/gini/z"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
)

// Kind distinguishes the propositional attributes tracked per cell.
type Kind uint8

const (
	// KindDamaged: the floor section at the cell is damaged.
	KindDamaged Kind = iota
	// KindForklift: the roving forklift occupies the cell.
	KindForklift
	// KindCreaking: a creaking signal is heard at the cell.
	KindCreaking
	// KindRumbling: a rumbling signal is heard at the cell.
	KindRumbling
	// KindSafe: the cell holds neither hazard.
	KindSafe

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindDamaged:
		return "damaged"
	case KindForklift:
		return "forklift"
	case KindCreaking:
		return "creaking"
	case KindRumbling:
		return "rumbling"
	case KindSafe:
		return "safe"
	default:
		return "unknown"
	}
}

// Encoder maps (kind, cell) atoms to solver literals. The mapping is a
// pure function of the grid dimensions, so the same atom always yields
// the same literal; the solver's incremental clause set relies on this.
type Encoder struct {
	width  int
	height int
}

// NewEncoder creates an encoder for a width×height grid.
func NewEncoder(width, height int) *Encoder {
	return &Encoder{width: width, height: height}
}

// Lit returns the positive literal for the (kind, cell) atom.
func (e *Encoder) Lit(k Kind, c grid.Cell) z.Lit {
	v := int(k)*e.width*e.height + (c.Y-1)*e.width + (c.X-1) + 1
	return z.Var(v).Pos()
}

// Damaged returns the literal asserting a damaged floor at c.
func (e *Encoder) Damaged(c grid.Cell) z.Lit { return e.Lit(KindDamaged, c) }

// Forklift returns the literal asserting the forklift at c.
func (e *Encoder) Forklift(c grid.Cell) z.Lit { return e.Lit(KindForklift, c) }

// Creaking returns the literal asserting a creaking signal at c.
func (e *Encoder) Creaking(c grid.Cell) z.Lit { return e.Lit(KindCreaking, c) }

// Rumbling returns the literal asserting a rumbling signal at c.
func (e *Encoder) Rumbling(c grid.Cell) z.Lit { return e.Lit(KindRumbling, c) }

// Safe returns the literal asserting c holds neither hazard.
func (e *Encoder) Safe(c grid.Cell) z.Lit { return e.Lit(KindSafe, c) }
