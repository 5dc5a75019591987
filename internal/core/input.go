package core

// Action represents a semantic host action, abstracted from physical key presses
// or WebSocket commands.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - move left
	ActionRight           // D, Right arrow - move right
	ActionShield          // 1 - activate shield item
	ActionSpeed           // 2 - activate speed item
	ActionConfirm         // Enter - start game / submit name
	ActionRankings        // R - show leaderboard
	ActionBack            // B, Escape - back to start screen
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionShield:
		return "Shield"
	case ActionSpeed:
		return "Speed"
	case ActionConfirm:
		return "Confirm"
	case ActionRankings:
		return "Rankings"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
