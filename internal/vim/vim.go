// internal/vim/vim.go

// Package vim is the modal input state machine. It maps (state, key event)
// to (new state, semantic command) and performs no I/O; what a command does
// is the pane coordinator's business.
package vim

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the current input mode
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
	Cmdline
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case Cmdline:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// State is the engine's explicit state. The zero value is Normal mode with
// nothing pending.
type State struct {
	Mode      Mode
	Pending   rune   // first key of a multi-key sequence (gg, dd, yy)
	Count     int    // accumulated repeat count, 0 when absent
	CmdBuffer string // command-line text being typed after ':'
	Register  string // last yanked text
}

// Reset returns to Normal mode and clears everything transient
func (s State) Reset() State {
	s.Mode = Normal
	s.Pending = 0
	s.Count = 0
	s.CmdBuffer = ""
	return s
}

// Handle interprets one key event. Esc always returns to Normal with pending
// state cleared; an unrecognized key is a no-op.
func Handle(s State, key tea.KeyMsg) (State, Command) {
	if key.Type == tea.KeyEsc {
		from := s.Mode
		s = s.Reset()
		if from == Cmdline {
			return s, cmd(ActionCancelCommandLine)
		}
		return s, cmd(ActionCancel)
	}

	switch s.Mode {
	case Insert:
		return handleInsert(s, key)
	case Visual:
		return handleVisual(s, key)
	case Cmdline:
		return handleCommand(s, key)
	default:
		return handleNormal(s, key)
	}
}

func handleNormal(s State, key tea.KeyMsg) (State, Command) {
	if c, ok := controlKey(key); ok {
		s.Pending = 0
		s.Count = 0
		return s, c
	}

	if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
		return s, None
	}
	r := key.Runes[0]

	// resolve a pending two-key sequence; a key that cannot extend it
	// clears the prefix and is re-evaluated as a fresh key
	if s.Pending != 0 {
		pending := s.Pending
		s.Pending = 0
		if pending == 'g' && r == 'g' {
			s.Count = 0
			return s, cmd(ActionGotoTop)
		}
		if pending == 'd' && r == 'd' {
			count := s.Count
			s.Count = 0
			return s, motion(ActionDeleteLine, count)
		}
		if pending == 'y' && r == 'y' {
			s.Count = 0
			return s, cmd(ActionYankLine)
		}
		return handleNormal(s, key)
	}

	// count accumulation; a leading 0 is the line-start motion
	if r >= '1' && r <= '9' || (r == '0' && s.Count > 0) {
		s.Count = s.Count*10 + int(r-'0')
		return s, None
	}

	count := s.Count
	s.Count = 0

	switch r {
	case 'h':
		return s, motion(ActionMoveLeft, count)
	case 'j':
		return s, motion(ActionMoveDown, count)
	case 'k':
		return s, motion(ActionMoveUp, count)
	case 'l':
		return s, motion(ActionMoveRight, count)
	case 'w':
		return s, motion(ActionWordForward, count)
	case 'b':
		return s, motion(ActionWordBack, count)
	case '0':
		return s, cmd(ActionLineStart)
	case '$':
		return s, cmd(ActionLineEnd)
	case 'g', 'd', 'y':
		s.Pending = r
		s.Count = count
		return s, None
	case 'G':
		return s, cmd(ActionGotoBottom)
	case 'i':
		s.Mode = Insert
		return s, cmd(ActionEnterInsert)
	case 'a':
		s.Mode = Insert
		return s, cmd(ActionEnterInsertAfter)
	case 'o':
		s.Mode = Insert
		return s, cmd(ActionEnterInsertLineBelow)
	case 'O':
		s.Mode = Insert
		return s, cmd(ActionEnterInsertLineAbove)
	case 'v':
		s.Mode = Visual
		return s, cmd(ActionEnterVisual)
	case ':':
		s.Mode = Cmdline
		s.CmdBuffer = ""
		return s, cmd(ActionEnterCommand)
	case 'e':
		return s, cmd(ActionEnterEdit)
	case 'x':
		return s, motion(ActionDeleteChar, count)
	case 'X':
		return s, cmd(ActionDeleteConnection)
	case 'p':
		return s, cmd(ActionPaste)
	case 'u':
		return s, cmd(ActionUndo)
	case 'r':
		return s, cmd(ActionRefresh)
	case '?':
		return s, cmd(ActionHelp)
	default:
		return s, None
	}
}

func handleVisual(s State, key tea.KeyMsg) (State, Command) {
	if c, ok := controlKey(key); ok {
		s.Pending = 0
		s.Count = 0
		return s, c
	}

	if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
		return s, None
	}
	r := key.Runes[0]

	if s.Pending != 0 {
		pending := s.Pending
		s.Pending = 0
		if pending == 'g' && r == 'g' {
			return s, cmd(ActionGotoTop)
		}
		return handleVisual(s, key)
	}

	if r >= '1' && r <= '9' || (r == '0' && s.Count > 0) {
		s.Count = s.Count*10 + int(r-'0')
		return s, None
	}

	count := s.Count
	s.Count = 0

	switch r {
	case 'h':
		return s, motion(ActionMoveLeft, count)
	case 'j':
		return s, motion(ActionMoveDown, count)
	case 'k':
		return s, motion(ActionMoveUp, count)
	case 'l':
		return s, motion(ActionMoveRight, count)
	case 'w':
		return s, motion(ActionWordForward, count)
	case 'b':
		return s, motion(ActionWordBack, count)
	case '0':
		return s, cmd(ActionLineStart)
	case '$':
		return s, cmd(ActionLineEnd)
	case 'g':
		s.Pending = 'g'
		return s, None
	case 'G':
		return s, cmd(ActionGotoBottom)
	case 'y':
		// consume the selection and return to Normal
		s.Mode = Normal
		return s, cmd(ActionYankSelection)
	case 'd':
		s.Mode = Normal
		return s, cmd(ActionDeleteSelection)
	default:
		return s, None
	}
}

func handleInsert(s State, key tea.KeyMsg) (State, Command) {
	switch key.Type {
	case tea.KeyEnter:
		return s, cmd(ActionInsertNewline)
	case tea.KeyBackspace:
		return s, cmd(ActionBackspace)
	case tea.KeyTab:
		return s, Command{Action: ActionInsertRune, Count: 1, Rune: '\t'}
	case tea.KeySpace:
		return s, Command{Action: ActionInsertRune, Count: 1, Rune: ' '}
	case tea.KeyLeft:
		return s, motion(ActionMoveLeft, 1)
	case tea.KeyRight:
		return s, motion(ActionMoveRight, 1)
	case tea.KeyUp:
		return s, motion(ActionMoveUp, 1)
	case tea.KeyDown:
		return s, motion(ActionMoveDown, 1)
	case tea.KeyRunes:
		if len(key.Runes) == 1 {
			return s, Command{Action: ActionInsertRune, Count: 1, Rune: key.Runes[0]}
		}
		return s, None
	default:
		return s, None
	}
}

func handleCommand(s State, key tea.KeyMsg) (State, Command) {
	switch key.Type {
	case tea.KeyEnter:
		text := s.CmdBuffer
		s = s.Reset()
		return s, Command{Action: ActionSubmitCommandLine, Count: 1, Text: text}
	case tea.KeyBackspace:
		if s.CmdBuffer == "" {
			// backspacing past the ':' cancels the command line
			s = s.Reset()
			return s, cmd(ActionCancelCommandLine)
		}
		s.CmdBuffer = s.CmdBuffer[:len(s.CmdBuffer)-1]
		return s, None
	case tea.KeySpace:
		s.CmdBuffer += " "
		return s, None
	case tea.KeyRunes:
		s.CmdBuffer += string(key.Runes)
		return s, None
	default:
		return s, None
	}
}

// controlKey maps keys that act the same in Normal and Visual mode
func controlKey(key tea.KeyMsg) (Command, bool) {
	switch key.Type {
	case tea.KeyLeft:
		return motion(ActionMoveLeft, 1), true
	case tea.KeyRight:
		return motion(ActionMoveRight, 1), true
	case tea.KeyUp:
		return motion(ActionMoveUp, 1), true
	case tea.KeyDown:
		return motion(ActionMoveDown, 1), true
	case tea.KeyEnter:
		return cmd(ActionSubmit), true
	case tea.KeyTab:
		return cmd(ActionNextPane), true
	case tea.KeyShiftTab:
		return cmd(ActionPrevPane), true
	case tea.KeyCtrlE:
		return cmd(ActionExecuteStatement), true
	case tea.KeyCtrlR:
		return cmd(ActionExecuteBuffer), true
	case tea.KeyCtrlS:
		return cmd(ActionCommitEdits), true
	case tea.KeyCtrlN:
		return cmd(ActionEnterInsertRow), true
	case tea.KeyCtrlC:
		return cmd(ActionQuit), true
	default:
		return None, false
	}
}
