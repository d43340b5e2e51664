package safety

import (
	"testing"

	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/kb"
)

func newFixture(t *testing.T) (*kb.KB, *Classifier) {
	t.Helper()
	start := grid.Cell{X: 1, Y: 1}
	k := kb.New(4, 4, start)
	return k, NewClassifier(k, 4, 4, start)
}

func tell(t *testing.T, k *kb.KB, cl *Classifier, c grid.Cell, creaking, rumbling bool) {
	t.Helper()
	if err := k.TellPercept(c, creaking, rumbling); err != nil {
		t.Fatalf("TellPercept %v: %v", c, err)
	}
	if err := cl.Refresh(); err != nil {
		t.Fatalf("Refresh after %v: %v", c, err)
	}
}

// A clear percept proves every in-bounds neighbor Safe immediately.
func TestCompletenessOnAdjacency(t *testing.T) {
	k, cl := newFixture(t)
	tell(t, k, cl, grid.Cell{X: 1, Y: 1}, false, false)

	for _, n := range (grid.Cell{X: 1, Y: 1}).Neighbors(4, 4) {
		if got := cl.Label(n); got != Safe {
			t.Errorf("Label(%v) = %v, want safe", n, got)
		}
	}
}

// A lone creak with two candidate cells must leave both Unknown.
func TestAmbiguityPreserved(t *testing.T) {
	k, cl := newFixture(t)
	tell(t, k, cl, grid.Cell{X: 1, Y: 1}, false, false)
	tell(t, k, cl, grid.Cell{X: 2, Y: 1}, true, false)

	for _, c := range []grid.Cell{{X: 3, Y: 1}, {X: 2, Y: 2}} {
		if got := cl.Label(c); got != Unknown {
			t.Errorf("Label(%v) = %v, want unknown", c, got)
		}
	}
}

// An independent percept that rules out one candidate flips the other
// to Unsafe and frees the rest of the frontier.
func TestDisambiguationViaCombination(t *testing.T) {
	k, cl := newFixture(t)
	tell(t, k, cl, grid.Cell{X: 1, Y: 1}, false, false)
	tell(t, k, cl, grid.Cell{X: 2, Y: 1}, true, false)
	tell(t, k, cl, grid.Cell{X: 1, Y: 2}, false, true)

	if got := cl.Label(grid.Cell{X: 3, Y: 1}); got != Unsafe {
		t.Errorf("Label(3,1) = %v, want unsafe", got)
	}
	if got := cl.Label(grid.Cell{X: 2, Y: 2}); got != Safe {
		t.Errorf("Label(2,2) = %v, want safe", got)
	}
	if got := cl.Label(grid.Cell{X: 1, Y: 3}); got != Unsafe {
		t.Errorf("Label(1,3) = %v, want unsafe", got)
	}
}

// Once Safe or Unsafe, a label never reverts as more percepts arrive.
func TestLabelsMonotone(t *testing.T) {
	k, cl := newFixture(t)

	percepts := []struct {
		cell               grid.Cell
		creaking, rumbling bool
	}{
		{grid.Cell{X: 1, Y: 1}, false, false},
		{grid.Cell{X: 2, Y: 1}, true, false},
		{grid.Cell{X: 1, Y: 2}, false, true},
		{grid.Cell{X: 2, Y: 2}, false, false},
	}

	decided := make(map[grid.Cell]Label)
	for _, p := range percepts {
		tell(t, k, cl, p.cell, p.creaking, p.rumbling)
		for y := 1; y <= 4; y++ {
			for x := 1; x <= 4; x++ {
				c := grid.Cell{X: x, Y: y}
				got := cl.Label(c)
				if prev, ok := decided[c]; ok && got != prev {
					t.Fatalf("Label(%v) flipped from %v to %v after percept at %v",
						c, prev, got, p.cell)
				}
				if got != Unknown {
					decided[c] = got
				}
			}
		}
	}
}

// No cell labeled Safe may hold a hazard in the ground-truth layout the
// percepts were generated from.
func TestSoundness(t *testing.T) {
	k, cl := newFixture(t)

	// Ground truth: damaged floor at (3,1), forklift at (1,3).
	hazards := map[grid.Cell]bool{{X: 3, Y: 1}: true, {X: 1, Y: 3}: true}

	tell(t, k, cl, grid.Cell{X: 1, Y: 1}, false, false)
	tell(t, k, cl, grid.Cell{X: 2, Y: 1}, true, false)
	tell(t, k, cl, grid.Cell{X: 1, Y: 2}, false, true)
	tell(t, k, cl, grid.Cell{X: 2, Y: 2}, false, false)

	for _, c := range cl.SafeCells() {
		if hazards[c] {
			t.Errorf("cell %v labeled safe but holds a hazard", c)
		}
	}
}

func TestStartCellSafeFromTheOutset(t *testing.T) {
	_, cl := newFixture(t)
	if got := cl.Label(grid.Cell{X: 1, Y: 1}); got != Safe {
		t.Errorf("Label(start) = %v, want safe before any percept", got)
	}
}
