package editor

import (
	"unicode"

	"github.com/dshills/keyview/internal/renderer/backend"
)

// Dispatch maps a key event to an action for the given mode.
// ok is false for events the mode does not recognise; those are ignored.
// Dispatch is pure: it depends on nothing but its arguments.
func Dispatch(mode Mode, ev backend.Event) (action Action, ok bool) {
	if ev.Type != backend.EventKey {
		return Action{}, false
	}

	switch mode {
	case ModeNormal:
		return normalAction(ev)
	case ModeInsert:
		return insertAction(ev)
	default:
		return Action{}, false
	}
}

func normalAction(ev backend.Event) (Action, bool) {
	switch ev.Key {
	case backend.KeyLeft:
		return MoveLeft, true
	case backend.KeyDown:
		return MoveDown, true
	case backend.KeyUp:
		return MoveUp, true
	case backend.KeyRight:
		return MoveRight, true
	case backend.KeyCtrlC:
		return Quit, true
	case backend.KeyRune:
		// handled below
	default:
		return Action{}, false
	}

	if ev.Mod.Has(backend.ModCtrl) {
		if ev.Rune == 'c' {
			return Quit, true
		}
		return Action{}, false
	}

	switch ev.Rune {
	case 'q':
		return Quit, true
	case 'h':
		return MoveLeft, true
	case 'j':
		return MoveDown, true
	case 'k':
		return MoveUp, true
	case 'l':
		return MoveRight, true
	case 'i':
		return EnterMode(ModeInsert), true
	default:
		return Action{}, false
	}
}

func insertAction(ev backend.Event) (Action, bool) {
	switch ev.Key {
	case backend.KeyEscape:
		return EnterMode(ModeNormal), true
	case backend.KeyEnter:
		return NewLine, true
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) || !unicode.IsPrint(ev.Rune) {
			return Action{}, false
		}
		return AddChar(ev.Rune), true
	default:
		return Action{}, false
	}
}
