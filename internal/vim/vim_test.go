// internal/vim/vim_test.go
package vim

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) []tea.KeyMsg {
	var keys []tea.KeyMsg
	for _, r := range s {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

func esc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func feed(s State, keys ...tea.KeyMsg) (State, Command) {
	var last Command
	for _, k := range keys {
		s, last = Handle(s, k)
	}
	return s, last
}

func TestEscAlwaysResetsToNormal(t *testing.T) {
	// a sampling of key sequences from every mode
	sequences := [][]tea.KeyMsg{
		runes("i"),
		runes("v"),
		runes(":"),
		runes(":open /tmp/x"),
		runes("g"),
		runes("12j"),
		append(runes("v"), runes("3l")...),
		append(runes("i"), runes("hello")...),
	}
	for i, seq := range sequences {
		s, _ := feed(State{}, seq...)
		s, _ = Handle(s, esc())
		if s.Mode != Normal {
			t.Errorf("seq %d: mode after Esc = %v, want Normal", i, s.Mode)
		}
		if s.Pending != 0 {
			t.Errorf("seq %d: pending prefix not cleared", i)
		}
		if s.Count != 0 {
			t.Errorf("seq %d: count not cleared", i)
		}
		if s.CmdBuffer != "" {
			t.Errorf("seq %d: command buffer not cleared", i)
		}
	}
}

func TestEscFromVisualEmitsCancel(t *testing.T) {
	s, _ := feed(State{}, runes("v")...)
	_, c := Handle(s, esc())
	if c.Action != ActionCancel {
		t.Fatalf("action = %v, want Cancel so the pane clears its anchor", c.Action)
	}
}

func TestGotoTopAndBottom(t *testing.T) {
	s, c := feed(State{}, runes("gg")...)
	if c.Action != ActionGotoTop {
		t.Fatalf("gg emitted %v, want GotoTop", c.Action)
	}
	if s.Pending != 0 {
		t.Fatal("pending prefix survived gg")
	}

	_, c = feed(State{}, runes("G")...)
	if c.Action != ActionGotoBottom {
		t.Fatalf("G emitted %v, want GotoBottom", c.Action)
	}
}

func TestPendingPrefixFallthrough(t *testing.T) {
	// g followed by a key that cannot extend the sequence re-evaluates
	// that key fresh
	s, c := feed(State{}, runes("gj")...)
	if c.Action != ActionMoveDown {
		t.Fatalf("gj emitted %v, want MoveDown", c.Action)
	}
	if s.Pending != 0 {
		t.Fatal("pending prefix survived fallthrough")
	}

	// an unknown key after g is a no-op, also clearing the prefix
	s, c = feed(State{}, runes("gz")...)
	if c.Action != ActionNone || s.Pending != 0 {
		t.Fatalf("gz emitted %v pending %q", c.Action, s.Pending)
	}
}

func TestCountAccumulation(t *testing.T) {
	_, c := feed(State{}, runes("12j")...)
	if c.Action != ActionMoveDown || c.Count != 12 {
		t.Fatalf("12j = %v x%d, want MoveDown x12", c.Action, c.Count)
	}

	// motions without a count default to 1
	_, c = feed(State{}, runes("l")...)
	if c.Count != 1 {
		t.Fatalf("bare motion count = %d, want 1", c.Count)
	}

	// leading zero is the line-start motion, not a count
	_, c = feed(State{}, runes("0")...)
	if c.Action != ActionLineStart {
		t.Fatalf("0 emitted %v, want LineStart", c.Action)
	}
	_, c = feed(State{}, runes("10j")...)
	if c.Count != 10 {
		t.Fatalf("10j count = %d", c.Count)
	}
}

func TestDeleteLineSequence(t *testing.T) {
	_, c := feed(State{}, runes("dd")...)
	if c.Action != ActionDeleteLine {
		t.Fatalf("dd emitted %v", c.Action)
	}
}

func TestVisualYankReturnsToNormal(t *testing.T) {
	s, c := feed(State{}, runes("vlly")...)
	if c.Action != ActionYankSelection {
		t.Fatalf("y in visual emitted %v", c.Action)
	}
	if s.Mode != Normal {
		t.Fatalf("mode after yank = %v, want Normal", s.Mode)
	}

	s, c = feed(State{}, runes("vjd")...)
	if c.Action != ActionDeleteSelection || s.Mode != Normal {
		t.Fatalf("d in visual = %v, mode %v", c.Action, s.Mode)
	}
}

func TestCommandLineAccumulatesAndSubmits(t *testing.T) {
	s, _ := feed(State{}, runes(":open /tmp/users.db")...)
	if s.Mode != Cmdline {
		t.Fatalf("mode = %v, want Cmdline", s.Mode)
	}
	if s.CmdBuffer != "open /tmp/users.db" {
		t.Fatalf("buffer = %q", s.CmdBuffer)
	}

	s, c := Handle(s, enter())
	if c.Action != ActionSubmitCommandLine {
		t.Fatalf("enter emitted %v", c.Action)
	}
	if c.Text != "open /tmp/users.db" {
		t.Fatalf("submitted text = %q", c.Text)
	}
	if s.Mode != Normal || s.CmdBuffer != "" {
		t.Fatal("command line did not reset on submit")
	}
}

func TestCommandLineBackspaceToEmptyCancels(t *testing.T) {
	backspace := tea.KeyMsg{Type: tea.KeyBackspace}

	s, _ := feed(State{}, runes(":q")...)
	s, c := Handle(s, backspace)
	if c.Action != ActionNone || s.CmdBuffer != "" {
		t.Fatalf("backspace: action %v buffer %q", c.Action, s.CmdBuffer)
	}

	s, c = Handle(s, backspace)
	if c.Action != ActionCancelCommandLine {
		t.Fatalf("backspace on empty buffer emitted %v", c.Action)
	}
	if s.Mode != Normal {
		t.Fatalf("mode = %v, want Normal", s.Mode)
	}
}

func TestInsertModeCollectsText(t *testing.T) {
	s, c := feed(State{}, runes("i")...)
	if s.Mode != Insert || c.Action != ActionEnterInsert {
		t.Fatalf("i: mode %v action %v", s.Mode, c.Action)
	}

	s, c = Handle(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if c.Action != ActionInsertRune || c.Rune != 'x' {
		t.Fatalf("rune in insert: %v %q", c.Action, c.Rune)
	}
	if s.Mode != Insert {
		t.Fatal("typing left insert mode")
	}

	// normal-mode commands must not fire while inserting
	_, c = Handle(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if c.Action != ActionInsertRune {
		t.Fatalf("j in insert emitted %v, want InsertRune", c.Action)
	}
}

func TestUnrecognizedKeyIsNoop(t *testing.T) {
	s, c := feed(State{}, runes("~")...)
	if c.Action != ActionNone {
		t.Fatalf("~ emitted %v", c.Action)
	}
	if s.Mode != Normal {
		t.Fatal("mode changed on unrecognized key")
	}
}

func TestControlChords(t *testing.T) {
	cases := []struct {
		key  tea.KeyType
		want Action
	}{
		{tea.KeyCtrlE, ActionExecuteStatement},
		{tea.KeyCtrlR, ActionExecuteBuffer},
		{tea.KeyCtrlS, ActionCommitEdits},
		{tea.KeyCtrlN, ActionEnterInsertRow},
		{tea.KeyTab, ActionNextPane},
		{tea.KeyShiftTab, ActionPrevPane},
	}
	for _, c := range cases {
		_, got := Handle(State{}, tea.KeyMsg{Type: c.key})
		if got.Action != c.want {
			t.Errorf("%v emitted %v, want %v", c.key, got.Action, c.want)
		}
	}
}
