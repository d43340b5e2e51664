package kb

import (
	"github.com/go-air/gini/z"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
)

// compilePhysics asserts the static rule set for every cell:
//
//	creaking(c)  ⇔  OR(damaged(n)  for n in neighbors(c))
//	rumbling(c)  ⇔  OR(forklift(n) for n in neighbors(c))
//	safe(c)      ⇔  ¬damaged(c) ∧ ¬forklift(c)
//
// Each biconditional is clausified directly: the forward direction
// becomes one clause (¬signal ∨ hazard(n1) ∨ ... ∨ hazard(nk)), the
// backward direction one binary clause per neighbor. Rule generation is
// a pure function of the grid dimensions.
func (kb *KB) compilePhysics() {
	for y := 1; y <= kb.height; y++ {
		for x := 1; x <= kb.width; x++ {
			c := grid.Cell{X: x, Y: y}
			neighbors := c.Neighbors(kb.width, kb.height)

			kb.signalRule(kb.enc.Creaking(c), KindDamaged, neighbors)
			kb.signalRule(kb.enc.Rumbling(c), KindForklift, neighbors)

			// safe(c) ⇔ ¬damaged(c) ∧ ¬forklift(c)
			safe := kb.enc.Safe(c)
			damaged := kb.enc.Damaged(c)
			forklift := kb.enc.Forklift(c)
			kb.addClause(safe.Not(), damaged.Not())
			kb.addClause(safe.Not(), forklift.Not())
			kb.addClause(safe, damaged, forklift)
		}
	}
}

// signalRule clausifies signal ⇔ OR(hazard(n) for n in neighbors).
func (kb *KB) signalRule(signal z.Lit, hazard Kind, neighbors []grid.Cell) {
	forward := make([]z.Lit, 0, len(neighbors)+1)
	forward = append(forward, signal.Not())
	for _, n := range neighbors {
		h := kb.enc.Lit(hazard, n)
		forward = append(forward, h)
		kb.addClause(h.Not(), signal)
	}
	kb.addClause(forward...)
}

// assertStartAxiom records that the start cell is hazard-free: the
// agent begins there, so the episode premise guarantees it.
func (kb *KB) assertStartAxiom() {
	kb.addClause(kb.enc.Damaged(kb.start).Not())
	kb.addClause(kb.enc.Forklift(kb.start).Not())
}
