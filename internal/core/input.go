package core

// Action represents a viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Space - pause/resume the world
	ActionStep           // N - advance one fixed step while paused
	ActionRestart        // R - rebuild the scene
	ActionDebug          // D - toggle debug drawing
	ActionFaster         // + - raise the time scale
	ActionSlower         // - - lower the time scale
	ActionBack           // B, Esc - back to the scene list
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionRestart:
		return "Restart"
	case ActionDebug:
		return "Debug"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one viewer tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
