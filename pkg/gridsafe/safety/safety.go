// Package safety derives the three-valued safety surface of the grid
// from the knowledge base. Labels are monotone: once a cell is proven
// Safe or Unsafe it stays that way for the rest of the episode, because
// facts only accumulate and provability is monotone under added facts.
// Only cells still Unknown are re-queried, so the classification cost
// is bounded by one oracle round-trip per cell amortized over the
// episode.
package safety

import (
	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/kb"
)

// Label is the safety verdict for one cell. It is deliberately a
// three-valued enumeration: Unknown is not Unsafe, and neither is a
// boolean.
type Label uint8

const (
	Unknown Label = iota
	Safe
	Unsafe
)

func (l Label) String() string {
	switch l {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

// Classifier caches per-cell labels over a single knowledge base.
type Classifier struct {
	kb     *kb.KB
	width  int
	height int
	labels map[grid.Cell]Label
}

// NewClassifier creates a classifier over k for a width×height grid.
// The start cell is labeled Safe up front; the KB axiom guarantees it.
func NewClassifier(k *kb.KB, width, height int, start grid.Cell) *Classifier {
	cl := &Classifier{
		kb:     k,
		width:  width,
		height: height,
		labels: make(map[grid.Cell]Label, width*height),
	}
	cl.labels[start] = Safe
	return cl
}

// Refresh re-tests every cell still labeled Unknown against the
// knowledge base. Call it after each percept assertion; Safe and
// Unsafe labels are final and are never queried again.
func (cl *Classifier) Refresh() error {
	for y := 1; y <= cl.height; y++ {
		for x := 1; x <= cl.width; x++ {
			c := grid.Cell{X: x, Y: y}
			if cl.labels[c] != Unknown {
				continue
			}
			safe, err := cl.kb.ProvablySafe(c)
			if err != nil {
				return err
			}
			if safe {
				cl.labels[c] = Safe
				continue
			}
			hazardous, err := cl.kb.ProvablyUnsafe(c)
			if err != nil {
				return err
			}
			if hazardous {
				cl.labels[c] = Unsafe
			}
		}
	}
	return nil
}

// Label returns the cached verdict for c. Cells outside the grid are
// Unknown.
func (cl *Classifier) Label(c grid.Cell) Label {
	return cl.labels[c]
}

// IsSafe reports whether c is labeled Safe.
func (cl *Classifier) IsSafe(c grid.Cell) bool {
	return cl.labels[c] == Safe
}

// SafeCells returns every cell currently labeled Safe, in row-column
// order.
func (cl *Classifier) SafeCells() []grid.Cell {
	var out []grid.Cell
	for y := 1; y <= cl.height; y++ {
		for x := 1; x <= cl.width; x++ {
			c := grid.Cell{X: x, Y: y}
			if cl.labels[c] == Safe {
				out = append(out, c)
			}
		}
	}
	return out
}
