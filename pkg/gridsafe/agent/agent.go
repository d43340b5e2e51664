// Package agent implements the reasoning core of the warehouse robot:
// a TELL/ASK/PLAN/ACT loop over a propositional knowledge base. Every
// call to Decide ingests one percept, reclassifies the safe region,
// replans from scratch, and emits exactly one primitive action. The
// agent only ever moves through cells the classifier has proven safe.
package agent

import (
	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
	"github.com/cognicore/gridsafe/pkg/gridsafe/internalerr"
	"github.com/cognicore/gridsafe/pkg/gridsafe/kb"
	"github.com/cognicore/gridsafe/pkg/gridsafe/plan"
	"github.com/cognicore/gridsafe/pkg/gridsafe/safety"
)

// Agent owns the fact set, the label cache and the episode state. It
// is strictly sequential; one Decide call must complete before the
// next begins.
type Agent struct {
	width  int
	height int
	start  grid.Cell

	kb     *kb.KB
	labels *safety.Classifier

	pos      grid.Cell
	heading  grid.Heading
	carrying bool
	visited  map[grid.Cell]bool
	told     map[grid.Cell]bool

	state   State
	steps   int
	done    bool
	success bool
	stuck   bool
}

// New creates an agent for a width×height grid starting at start,
// facing east. The knowledge base is seeded with the physics rules and
// the start-safety axiom.
func New(width, height int, start grid.Cell) *Agent {
	k := kb.New(width, height, start)
	return &Agent{
		width:   width,
		height:  height,
		start:   start,
		kb:      k,
		labels:  safety.NewClassifier(k, width, height, start),
		pos:     start,
		heading: grid.East,
		visited: map[grid.Cell]bool{start: true},
		told:    make(map[grid.Cell]bool),
		state:   Exploring,
	}
}

// Decide runs one step of the loop: assert the percept, refresh the
// safety labels, pick the next intent by fixed priority, and return
// the next primitive action. The agent's own state advances as if the
// action succeeds; the environment is deterministic.
func (a *Agent) Decide(p Percept) (Action, error) {
	if a.done {
		return ActionExit, internalerr.ErrEpisodeOver
	}

	a.visited[a.pos] = true
	if err := a.tell(p); err != nil {
		return ActionExit, err
	}

	// Parcel underfoot: collect before anything else.
	if p.Parcel && !a.carrying {
		a.carrying = true
		a.steps++
		return ActionGrab, nil
	}

	if err := a.labels.Refresh(); err != nil {
		return ActionExit, err
	}

	if a.carrying {
		return a.headHome(true)
	}

	// Explore the nearest safe unvisited cell, if any remains.
	path, ok := a.shortest(func(c grid.Cell) bool {
		return a.labels.IsSafe(c) && !a.visited[c]
	})
	if ok {
		a.state = Exploring
		return a.follow(path), nil
	}

	// Frontier exhausted without the parcel: give up and go home.
	a.stuck = true
	return a.headHome(false)
}

// headHome routes the agent back to the start cell and exits there.
func (a *Agent) headHome(success bool) (Action, error) {
	if a.pos == a.start {
		a.state = Exiting
		a.done = true
		a.success = success
		a.steps++
		return ActionExit, nil
	}
	a.state = Returning
	path, ok := a.shortest(func(c grid.Cell) bool { return c == a.start })
	if !ok {
		// Replanning with unchanged facts cannot succeed; terminal.
		a.state = Stuck
		a.stuck = true
		a.done = true
		return ActionExit, nil
	}
	return a.follow(path), nil
}

// tell asserts the percept for the current cell once. The warehouse is
// static, so re-telling on revisits adds nothing.
func (a *Agent) tell(p Percept) error {
	if a.told[a.pos] {
		return nil
	}
	a.told[a.pos] = true
	return a.kb.TellPercept(a.pos, p.Creaking, p.Rumbling)
}

func (a *Agent) shortest(goal func(grid.Cell) bool) ([]grid.Cell, bool) {
	return plan.Shortest(a.pos, a.width, a.height, a.labels.IsSafe, goal)
}

// follow emits the next primitive action along path and advances the
// agent's own pose. Turns are minimal: one 90° rotation toward the
// required heading, clockwise on the 180° tie.
func (a *Agent) follow(path []grid.Cell) Action {
	a.steps++
	if len(path) < 2 {
		// Already at the goal cell; nothing to do but spin in place.
		// Callers handle goal-at-current-cell before planning, so this
		// is unreachable in practice.
		return ActionTurnRight
	}
	want, ok := grid.HeadingBetween(a.pos, path[1])
	if !ok {
		return ActionTurnRight
	}
	switch (want - a.heading + 4) % 4 {
	case 0:
		a.pos = path[1]
		return ActionForward
	case 3:
		a.heading = a.heading.Left()
		return ActionTurnLeft
	default: // 1 or 2: turn clockwise
		a.heading = a.heading.Right()
		return ActionTurnRight
	}
}

// Done reports whether the episode has terminated.
func (a *Agent) Done() bool { return a.done }

// State returns the current decision-policy state.
func (a *Agent) State() State { return a.state }

// Pos returns the cell the agent believes it occupies.
func (a *Agent) Pos() grid.Cell { return a.pos }

// Carrying reports whether the agent holds the parcel.
func (a *Agent) Carrying() bool { return a.carrying }

// Labels exposes the safety classifier, for drivers that trace or
// visualize the proven region.
func (a *Agent) Labels() *safety.Classifier { return a.labels }

// Report summarizes the episode so far.
func (a *Agent) Report() Report {
	return Report{
		Success: a.success,
		Stuck:   a.stuck,
		Steps:   a.steps,
		State:   a.state,
	}
}
