package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/jump"
	"github.com/r-owen/toika-loom-client/internal/logging/events"
)

const (
	jumpFieldPick = iota
	jumpFieldRepeat
)

const jumpFieldWidth = 6

func newNumberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 9
	ti.Width = jumpFieldWidth
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m *Model) jumpFields() jump.Fields {
	return jump.Fields{Pick: m.jumpPick.Value(), Repeat: m.jumpRepeat.Value()}
}

func (m *Model) jumpAffordance() jump.Affordance {
	return jump.Evaluate(m.jumpFields(), m.client.Jump)
}

// syncJumpFields rewrites both fields from the server's jump target.
func (m *Model) syncJumpFields() {
	f := jump.FromTarget(m.client.Jump)
	m.jumpPick.SetValue(f.Pick)
	m.jumpRepeat.SetValue(f.Repeat)
}

// focusJumpField focuses one field. The next digit typed replaces its
// contents, so a new value can be entered without clearing the old one.
func (m *Model) focusJumpField(field int) {
	m.jumpField = field
	m.jumpPick.Blur()
	m.jumpRepeat.Blur()
	if field == jumpFieldRepeat {
		m.jumpRepeat.Focus()
		m.jumpRepeat.CursorEnd()
	} else {
		m.jumpPick.Focus()
		m.jumpPick.CursorEnd()
	}
	m.selectAll = true
}

func (m *Model) activeJumpInput() *textinput.Model {
	if m.jumpField == jumpFieldRepeat {
		return &m.jumpRepeat
	}
	return &m.jumpPick
}

func (m *Model) handleJumpKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setFocus(FocusPattern)
		return nil
	case key.Matches(msg, m.keys.NextField):
		m.focusJumpField(1 - m.jumpField)
		return nil
	case key.Matches(msg, m.keys.Submit):
		m.errMsg = ""
		return m.submitJump()
	case key.Matches(msg, m.keys.ResetJump):
		m.errMsg = ""
		return m.resetJump()
	}
	input := m.activeJumpInput()
	if msg.Type == tea.KeyRunes {
		if !isDigits(msg.Runes) {
			return nil
		}
		if m.selectAll {
			input.SetValue("")
		}
	}
	m.selectAll = false
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

// submitJump sends the typed jump when it differs from the server's.
func (m *Model) submitJump() tea.Cmd {
	if !m.jumpAffordance().Submit {
		events.Command.NoOp("jump")
		return nil
	}
	cmd, err := jump.Command(m.jumpFields())
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	return m.send(cmd, "jump")
}

// resetJump clears both fields and cancels any pending jump.
func (m *Model) resetJump() tea.Cmd {
	if !m.jumpAffordance().Reset {
		events.Command.NoOp("reset jump")
		return nil
	}
	if m.refusal() == "" {
		m.jumpPick.SetValue("")
		m.jumpRepeat.SetValue("")
	}
	return m.send(jump.ResetCommand(), "reset jump")
}
