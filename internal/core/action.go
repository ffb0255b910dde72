package core

// Action represents a semantic input, abstracted from physical key presses.
// The platform layer maps keys to actions; screens only ever see actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionPlace          // Space, Enter - place a mark under the cursor
	ActionCell           // 1-9 - place directly on a numbered cell
	ActionConfirm        // Enter - confirm selection in menus
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - play again with the same categories
	ActionHelp           // ? - toggle the rules overlay
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPlace:
		return "Place"
	case ActionCell:
		return "Cell"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press. Cell is only meaningful for ActionCell and
// holds the zero-based board index.
type Input struct {
	Action Action
	Cell   int
}

// CellFromDigit maps the keys '1'..'9' to board indices 0..8, row-major
// from the top-left.
func CellFromDigit(r rune) (int, bool) {
	if r < '1' || r > '9' {
		return -1, false
	}
	return int(r - '1'), true
}
