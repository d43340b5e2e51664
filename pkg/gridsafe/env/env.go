// Package env simulates the hazardous warehouse. The agent core treats
// it as an external collaborator: the only contract is Reset and Step,
// with percepts limited to what the robot can sense at its own cell.
package env

import (
	"github.com/cognicore/gridsafe/pkg/gridsafe/grid"
)

// Action is one primitive robot command.
type Action uint8

const (
	ActionTurnLeft Action = iota
	ActionTurnRight
	ActionForward
	ActionGrab
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionTurnLeft:
		return "turn-left"
	case ActionTurnRight:
		return "turn-right"
	case ActionForward:
		return "forward"
	case ActionGrab:
		return "grab"
	case ActionExit:
		return "exit"
	}
	return "invalid"
}

// Percept is everything the robot senses at its current cell: creaking
// from an adjacent damaged floor section, rumbling from the forklift in
// an adjacent aisle, and whether the sought parcel sits right here.
type Percept struct {
	Creaking bool
	Rumbling bool
	Parcel   bool
}

// Layout is the ground-truth configuration of one warehouse. The
// forklift is optional; a zero cell means there is none.
type Layout struct {
	Width    int
	Height   int
	Start    grid.Cell
	Damaged  []grid.Cell
	Forklift grid.Cell
	Parcel   grid.Cell
}

// Rewards holds the scoring constants. They are configuration, not a
// contract; tests derive expectations from whatever values they pass.
type Rewards struct {
	StepPenalty   int
	CollectBonus  int
	SuccessBonus  int
	HazardPenalty int
}

// Outcome summarizes how an episode ended.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeSuccess
	OutcomeGaveUp
	OutcomeHazard
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeSuccess:
		return "success"
	case OutcomeGaveUp:
		return "gave-up"
	case OutcomeHazard:
		return "hazard"
	}
	return "invalid"
}

// Env steps one warehouse episode. Not safe for concurrent use.
type Env struct {
	layout  Layout
	rewards Rewards

	pos       grid.Cell
	heading   grid.Heading
	carrying  bool
	collected bool
	done      bool
	outcome   Outcome
	steps     int
}

// New creates an environment for the given layout and reward scheme.
func New(layout Layout, rewards Rewards) *Env {
	e := &Env{layout: layout, rewards: rewards}
	e.resetState()
	return e
}

func (e *Env) resetState() {
	e.pos = e.layout.Start
	e.heading = grid.East
	e.carrying = false
	e.collected = false
	e.done = false
	e.outcome = OutcomeRunning
	e.steps = 0
}

// Reset restarts the episode and returns the initial percept.
func (e *Env) Reset() Percept {
	e.resetState()
	return e.percept()
}

// Step applies one action and returns the resulting percept, the
// reward for this step, and whether the episode is over.
func (e *Env) Step(a Action) (Percept, int, bool) {
	if e.done {
		return e.percept(), 0, true
	}
	reward := -e.rewards.StepPenalty
	e.steps++

	switch a {
	case ActionTurnLeft:
		e.heading = e.heading.Left()
	case ActionTurnRight:
		e.heading = e.heading.Right()
	case ActionForward:
		next := e.heading.Ahead(e.pos)
		if next.In(e.layout.Width, e.layout.Height) {
			e.pos = next
			if e.hazardAt(e.pos) {
				reward -= e.rewards.HazardPenalty
				e.done = true
				e.outcome = OutcomeHazard
			}
		}
	case ActionGrab:
		if !e.collected && e.pos == e.layout.Parcel {
			e.carrying = true
			e.collected = true
			reward += e.rewards.CollectBonus
		}
	case ActionExit:
		if e.pos == e.layout.Start {
			e.done = true
			if e.carrying {
				reward += e.rewards.SuccessBonus
				e.outcome = OutcomeSuccess
			} else {
				e.outcome = OutcomeGaveUp
			}
		}
	}

	return e.percept(), reward, e.done
}

// Outcome reports how the episode ended; OutcomeRunning while it has
// not.
func (e *Env) Outcome() Outcome { return e.outcome }

// Steps returns the number of actions applied since the last reset.
func (e *Env) Steps() int { return e.steps }

// Carrying reports whether the robot holds the parcel.
func (e *Env) Carrying() bool { return e.carrying }

// Pos returns the robot's ground-truth cell, for tests and tracing.
func (e *Env) Pos() grid.Cell { return e.pos }

func (e *Env) hazardAt(c grid.Cell) bool {
	for _, d := range e.layout.Damaged {
		if d == c {
			return true
		}
	}
	return e.layout.Forklift == c && c.In(e.layout.Width, e.layout.Height)
}

func (e *Env) percept() Percept {
	var p Percept
	for _, n := range e.pos.Neighbors(e.layout.Width, e.layout.Height) {
		if e.hazardAtDamaged(n) {
			p.Creaking = true
		}
		if e.layout.Forklift == n {
			p.Rumbling = true
		}
	}
	p.Parcel = !e.collected && e.pos == e.layout.Parcel
	return p
}

func (e *Env) hazardAtDamaged(c grid.Cell) bool {
	for _, d := range e.layout.Damaged {
		if d == c {
			return true
		}
	}
	return false
}
