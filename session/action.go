package session

import "fmt"

// ActionKind enumerates the commands a session understands
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSpeedUp
	ActionSpeedDown
	ActionToggleRunning
	ActionToggleHelp
	ActionToggleFieldActive
	ActionCursor
	ActionSaveToFile
	ActionLoadFromFile
	ActionQuit
)

var actionNames = map[ActionKind]string{
	ActionNone:              "None",
	ActionSpeedUp:           "SpeedUp",
	ActionSpeedDown:         "SpeedDown",
	ActionToggleRunning:     "ToggleRunning",
	ActionToggleHelp:        "ToggleHelp",
	ActionToggleFieldActive: "ToggleFieldActive",
	ActionCursor:            "Cursor",
	ActionSaveToFile:        "SaveToFile",
	ActionLoadFromFile:      "LoadFromFile",
	ActionQuit:              "Quit",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Direction is a cursor step on the board
type Direction int

const (
	// Up moves to the previous row
	Up Direction = iota + 1
	// Down moves to the next row
	Down
	// Left moves to the previous column
	Left
	// Right moves to the next column
	Right
)

// delta returns the (row, column) offset of one step
func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Action is one abstract command. Direction is only read for ActionCursor.
type Action struct {
	Kind      ActionKind
	Direction Direction
}

// Simple wraps a kind that carries no payload
func Simple(kind ActionKind) Action {
	return Action{Kind: kind}
}

// Cursor returns an action that moves the cursor by one step
func Cursor(d Direction) Action {
	return Action{Kind: ActionCursor, Direction: d}
}

// IsQuit reports whether the surrounding loop should stop
func (a Action) IsQuit() bool {
	return a.Kind == ActionQuit
}

func (a Action) String() string {
	if a.Kind == ActionCursor {
		return fmt.Sprintf("Cursor(%s)", a.Direction)
	}
	return a.Kind.String()
}
