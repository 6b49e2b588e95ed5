package session

// State фаза входа клиента
type State int

const (
	Anonymous State = iota
	Authenticating
	AwaitingSecondFactor
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case AwaitingSecondFactor:
		return "awaiting_second_factor"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Listener получает каждую смену состояния
type Listener func(from, to State)
