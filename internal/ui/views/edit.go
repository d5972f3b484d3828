package views

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editState int

const (
	editIdle editState = iota
	editEditing
	editCommitted
)

// editSession edits one label in place. It moves idle -> editing ->
// committed and commits at most once; enter and focus loss share the
// same commit path.
type editSession struct {
	state  editState
	target target
	input  textinput.Model

	// selected mirrors a full-text selection: typing replaces the text,
	// backspace clears it, cursor movement drops the selection.
	selected bool
}

func newEditSession(t target, text string, width int) *editSession {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 0
	input.Width = width
	input.Cursor.SetMode(cursor.CursorStatic)
	input.SetValue(text)
	input.CursorEnd()

	return &editSession{
		state:  editIdle,
		target: t,
		input:  input,
	}
}

// start focuses the editor and selects its whole text
func (e *editSession) start() tea.Cmd {
	if e.state != editIdle {
		return nil
	}
	e.state = editEditing
	e.selected = true
	return e.input.Focus()
}

func (e *editSession) editing() bool {
	return e.state == editEditing
}

// commitTrigger reports whether msg ends the session. Enter commits
// directly; the others move focus away from the label.
func commitTrigger(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return true
	}
	return false
}

// update feeds a key into the editor. Commit triggers are not handled here.
func (e *editSession) update(msg tea.KeyMsg) tea.Cmd {
	if !e.editing() {
		return nil
	}

	if e.selected {
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			e.input.SetValue("")
			e.selected = false
		case tea.KeyBackspace, tea.KeyDelete:
			e.input.SetValue("")
			e.selected = false
			return nil
		default:
			e.selected = false
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// forward passes non-key messages (cursor blink) to the editor
func (e *editSession) forward(msg tea.Msg) tea.Cmd {
	if !e.editing() {
		return nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// commit finishes the session and returns the edited text. Only the
// first call reports ok.
func (e *editSession) commit() (string, bool) {
	if e.state != editEditing {
		return "", false
	}
	e.state = editCommitted
	e.selected = false
	e.input.Blur()
	return e.input.Value(), true
}
