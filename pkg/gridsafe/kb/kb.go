// Package kb maintains the propositional knowledge base of one episode:
// the static physics rules of the warehouse, the start-safety axiom,
// and every percept observed so far. Facts only accumulate (nothing is
// retracted within an episode) and exact entailment queries are
// answered by refutation against an incremental SAT solver.
package kb

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/internalerr"
)

// KB owns the monotonically growing fact set. It is not safe for
// concurrent use; the agent loop is its only caller.
type KB struct {
	enc    *Encoder
	sat    *gini.Gini
	width  int
	height int
	start  grid.Cell
	facts  int
}

// New builds a knowledge base for a width×height grid, seeded with the
// physics rules and the axiom that the start cell is hazard-free.
func New(width, height int, start grid.Cell) *KB {
	kb := &KB{
		enc:    NewEncoder(width, height),
		sat:    gini.New(),
		width:  width,
		height: height,
		start:  start,
	}
	kb.compilePhysics()
	kb.assertStartAxiom()
	return kb
}

// Encoder exposes the atom-to-literal mapping, for callers that build
// their own queries.
func (kb *KB) Encoder() *Encoder { return kb.enc }

// Facts returns the number of percept literals asserted so far.
func (kb *KB) Facts() int { return kb.facts }

// addClause asserts a permanent clause (disjunction of literals).
func (kb *KB) addClause(ms ...z.Lit) {
	for _, m := range ms {
		kb.sat.Add(m)
	}
	kb.sat.Add(z.LitNull)
}

// TellPercept asserts the hazard signals observed at c. The assertion
// is permanent. Returns ErrInconsistent if the fact set becomes
// unsatisfiable, which means a sensing or rule-compilation bug and is
// fatal for the episode.
func (kb *KB) TellPercept(c grid.Cell, creaking, rumbling bool) error {
	ck := kb.enc.Creaking(c)
	if !creaking {
		ck = ck.Not()
	}
	rm := kb.enc.Rumbling(c)
	if !rumbling {
		rm = rm.Not()
	}
	kb.addClause(ck)
	kb.addClause(rm)
	kb.facts += 2

	switch kb.sat.Solve() {
	case 1:
		return nil
	case -1:
		return fmt.Errorf("percept at (%d,%d): %w", c.X, c.Y, internalerr.ErrInconsistent)
	default:
		return internalerr.ErrOracle
	}
}

// Entails reports whether the fact set entails the literal q, checked
// by refutation: assume ¬q and test satisfiability. Unsatisfiable means
// the entailment holds; satisfiable covers both "provably false" and
// "undetermined"; issue the complementary query to tell them apart.
// The assumption is scoped to this one solve, so queries never leak
// into the persistent fact set.
func (kb *KB) Entails(q z.Lit) (bool, error) {
	kb.sat.Assume(q.Not())
	switch kb.sat.Solve() {
	case -1:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, internalerr.ErrOracle
	}
}

// ProvablySafe reports whether safe(c) is entailed.
func (kb *KB) ProvablySafe(c grid.Cell) (bool, error) {
	return kb.Entails(kb.enc.Safe(c))
}

// ProvablyUnsafe reports whether ¬safe(c) is entailed.
func (kb *KB) ProvablyUnsafe(c grid.Cell) (bool, error) {
	return kb.Entails(kb.enc.Safe(c).Not())
}
