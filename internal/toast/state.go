package toast

// State is a phase of a toast's life. States only move forward.
type State uint8

const (
	Created State = iota
	Appearing
	Holding
	Dismissing
	Destroyed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Appearing:
		return "appearing"
	case Holding:
		return "holding"
	case Dismissing:
		return "dismissing"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
