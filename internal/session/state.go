package session

// State is the exercise-level state of a session
type State int

const (
	Idle State = iota
	Classified
	Solved
	Advanced
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Classified:
		return "classified"
	case Solved:
		return "solved"
	case Advanced:
		return "advanced"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
