package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newPathInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "upload> "
	ti.Placeholder = "pattern files (.wif, .dtx), space separated"
	ti.CharLimit = 4096
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m *Model) handleUploadKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setFocus(FocusPattern)
		return nil
	case key.Matches(msg, m.keys.Submit):
		paths := parseUploadPaths(m.uploadPrompt.Value())
		m.setFocus(FocusPattern)
		m.errMsg = ""
		return m.startUpload(paths)
	}
	var cmd tea.Cmd
	m.uploadPrompt, cmd = m.uploadPrompt.Update(msg)
	return cmd
}
