package core

// Action represents a semantic host action, abstracted from physical keys.
// Taps are not actions: they carry a playfield point and are delivered
// separately.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Enter/Space on the title or results screen
	ActionPause          // P, Escape - pause/resume toggle
	ActionRestart        // R - play again after game over
	ActionQuit           // Q - abandon the run and return to the title
	ActionExit           // Ctrl+C - leave the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionExit:
		return "Exit"
	default:
		return "Unknown"
	}
}
