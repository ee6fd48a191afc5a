package shell

import "strings"

// Action is a main menu choice
type Action int

const (
	ActionInvalid Action = iota
	ActionAdd
	ActionList
	ActionQuit
	ActionClear
)

// validInputs lists the accepted menu keys in display order
var validInputs = []string{"1", "2", "q", "c"}

// ParseAction resolves one line of menu input. Matching is case-insensitive
// and exact otherwise; surrounding spaces make the input invalid.
func ParseAction(input string) Action {
	switch strings.ToLower(input) {
	case "1":
		return ActionAdd
	case "2":
		return ActionList
	case "q":
		return ActionQuit
	case "c":
		return ActionClear
	default:
		return ActionInvalid
	}
}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionList:
		return "list"
	case ActionQuit:
		return "quit"
	case ActionClear:
		return "clear"
	default:
		return "invalid"
	}
}
