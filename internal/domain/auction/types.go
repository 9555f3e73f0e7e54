package auction

type State string

const (
	StateDraft     State = "Draft"
	StateActive    State = "Active"
	StatePaused    State = "Paused"
	StateEnded     State = "Ended"
	StateCancelled State = "Cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateDraft, StateActive, StatePaused, StateEnded, StateCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports states that accept no further transition.
func (s State) IsTerminal() bool {
	return s == StateEnded || s == StateCancelled
}

type ConsistencyLevel string

const (
	ConsistencyStrong   ConsistencyLevel = "strong"
	ConsistencyEventual ConsistencyLevel = "eventual"
)

func (c ConsistencyLevel) IsValid() bool {
	switch c {
	case ConsistencyStrong, ConsistencyEventual:
		return true
	default:
		return false
	}
}
