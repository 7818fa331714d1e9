package update

// State is a controller lifecycle state.
type State int

// Lifecycle states. StateSavedSuccess and StateSaveFailed are resting states:
// a controller in either accepts a new Init or Save, like StateIdle.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSaving
	StateSavedSuccess
	StateSaveFailed
)

var stateNames = map[State]string{
	StateIdle:         "idle",
	StateLoading:      "loading",
	StateReady:        "ready",
	StateSaving:       "saving",
	StateSavedSuccess: "saved",
	StateSaveFailed:   "save-failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Resting reports whether the controller is not loading or saving.
func (s State) Resting() bool {
	switch s {
	case StateIdle, StateReady, StateSavedSuccess, StateSaveFailed:
		return true
	}
	return false
}
