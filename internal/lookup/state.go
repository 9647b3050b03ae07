package lookup

type State string

const (
	StateIdle    State = "IDLE"
	StateLoading State = "LOADING"
	StateShown   State = "SHOWN"
	StateError   State = "ERROR"
)

// Nothing returns to idle; a newer lookup may start from any other state.
var validNext = map[State]map[State]bool{
	StateIdle:    {StateLoading: true, StateError: true},
	StateLoading: {StateLoading: true, StateShown: true, StateError: true},
	StateShown:   {StateLoading: true, StateError: true},
	StateError:   {StateLoading: true, StateError: true},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}
