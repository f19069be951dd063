package editor

import "strconv"

// Mode is the editor's input mode.
type Mode int

const (
	// ModeNormal interprets keys as navigation commands.
	ModeNormal Mode = iota
	// ModeInsert interprets printable keys as text.
	ModeInsert
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// ActionKind identifies what an Action does.
type ActionKind int

const (
	ActionQuit ActionKind = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionEnterMode
	ActionAddChar
	ActionNewLine
)

var actionNames = map[ActionKind]string{
	ActionQuit:      "quit",
	ActionMoveUp:    "move-up",
	ActionMoveDown:  "move-down",
	ActionMoveLeft:  "move-left",
	ActionMoveRight: "move-right",
	ActionEnterMode: "enter-mode",
	ActionAddChar:   "add-char",
	ActionNewLine:   "newline",
}

// String returns the action name.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "action(" + strconv.Itoa(int(k)) + ")"
}

// Action is the result of interpreting one input event.
// Mode is set for ActionEnterMode, Char for ActionAddChar.
type Action struct {
	Kind ActionKind
	Mode Mode
	Char rune
}

// Predefined actions.
var (
	Quit      = Action{Kind: ActionQuit}
	MoveUp    = Action{Kind: ActionMoveUp}
	MoveDown  = Action{Kind: ActionMoveDown}
	MoveLeft  = Action{Kind: ActionMoveLeft}
	MoveRight = Action{Kind: ActionMoveRight}
	NewLine   = Action{Kind: ActionNewLine}
)

// EnterMode returns the action that switches to mode m.
func EnterMode(m Mode) Action {
	return Action{Kind: ActionEnterMode, Mode: m}
}

// AddChar returns the action that inserts c at the cursor.
func AddChar(c rune) Action {
	return Action{Kind: ActionAddChar, Char: c}
}

// String formats the action for logs.
func (a Action) String() string {
	switch a.Kind {
	case ActionEnterMode:
		return a.Kind.String() + "(" + a.Mode.String() + ")"
	case ActionAddChar:
		return a.Kind.String() + "(" + strconv.QuoteRune(a.Char) + ")"
	default:
		return a.Kind.String()
	}
}
