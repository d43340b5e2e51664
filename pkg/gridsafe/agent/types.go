package agent

// Action is one primitive command the agent can emit per step.
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

// Percept is the sensory input for the agent's current cell.
type Percept struct {
	Creaking bool
	Rumbling bool
	Parcel   bool
}

// State is the decision-policy state.
type State uint8

const (
	Exploring State = iota
	Returning
	Exiting
	Stuck
)

func (s State) String() string {
	switch s {
	case Exploring:
		return "exploring"
	case Returning:
		return "returning"
	case Exiting:
		return "exiting"
	case Stuck:
		return "stuck"
	}
	return "invalid"
}

// Report summarizes a finished episode from the agent's perspective.
// Stuck is set when the episode ended without the parcel because the
// safe frontier ran out. That is the expected outcome of the
// conservative policy, not an error.
type Report struct {
	Success bool
	Stuck   bool
	Steps   int
	State   State
}
