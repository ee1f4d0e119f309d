// internal/vim/command.go
package vim

// Action is a mode-independent token of user intent. The engine emits
// actions; the pane coordinator decides what they mean for the focused pane.
type Action int

const (
	ActionNone Action = iota

	// motions
	ActionMoveLeft
	ActionMoveDown
	ActionMoveUp
	ActionMoveRight
	ActionWordForward
	ActionWordBack
	ActionLineStart
	ActionLineEnd
	ActionGotoTop
	ActionGotoBottom

	// mode entries
	ActionEnterInsert
	ActionEnterInsertAfter
	ActionEnterInsertLineBelow
	ActionEnterInsertLineAbove
	ActionEnterVisual
	ActionEnterCommand
	ActionEnterEdit
	ActionEnterInsertRow

	// editing
	ActionDeleteChar
	ActionDeleteLine
	ActionDeleteSelection
	ActionYankSelection
	ActionYankLine
	ActionPaste
	ActionUndo
	ActionInsertRune
	ActionInsertNewline
	ActionBackspace

	// text-mode command line
	ActionSubmitCommandLine
	ActionCancelCommandLine

	// application
	ActionExecuteStatement
	ActionExecuteBuffer
	ActionCommitEdits
	ActionDeleteConnection
	ActionNextPane
	ActionPrevPane
	ActionSubmit
	ActionBack
	ActionCancel
	ActionRefresh
	ActionHelp
	ActionQuit
)

// Command is an emitted action with its repeat count and payload
type Command struct {
	Action Action
	Count  int    // >= 1 for motions
	Rune   rune   // payload for ActionInsertRune
	Text   string // payload for ActionSubmitCommandLine
}

// None is the empty command; unrecognized keys are a no-op, not an error
var None = Command{Action: ActionNone}

func cmd(a Action) Command { return Command{Action: a, Count: 1} }

func motion(a Action, count int) Command {
	if count < 1 {
		count = 1
	}
	return Command{Action: a, Count: count}
}
