package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/protocol"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch m.focus {
	case FocusMenu:
		return m.handleMenuKey(keyMsg)
	case FocusJump:
		return m.handleJumpKey(keyMsg)
	case FocusUpload:
		return m.handleUploadKey(keyMsg)
	default:
		return m.handlePatternKey(keyMsg)
	}
}

func (m *Model) handlePatternKey(msg tea.KeyMsg) tea.Cmd {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Menu):
		m.setFocus(FocusMenu)
	case key.Matches(msg, m.keys.Jump):
		m.setFocus(FocusJump)
	case key.Matches(msg, m.keys.Submit):
		return m.submitJump()
	case key.Matches(msg, m.keys.ResetJump):
		return m.resetJump()
	case key.Matches(msg, m.keys.Direction):
		return m.send(protocol.SetWeaveDirection{Forward: !m.client.Forward}, "weave direction")
	case key.Matches(msg, m.keys.Upload):
		m.setFocus(FocusUpload)
	case key.Matches(msg, m.keys.Copy):
		return m.copyLastRead()
	case key.Matches(msg, m.keys.Snapshot):
		return m.snapshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.redraw()
	case key.Matches(msg, m.keys.OOBDirection):
		return m.send(protocol.OOBCommand{Command: protocol.OOBChangeDirection}, "oob change direction")
	case key.Matches(msg, m.keys.OOBClose):
		return m.send(protocol.OOBCommand{Command: protocol.OOBCloseConnection}, "oob close connection")
	case key.Matches(msg, m.keys.OOBNextPick):
		return m.send(protocol.OOBCommand{Command: protocol.OOBNextPick}, "oob next pick")
	case key.Matches(msg, m.keys.OOBError):
		return m.send(protocol.OOBCommand{Command: protocol.OOBToggleError}, "oob toggle error")
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.viewWidth()
	m.redraw()
	return nil
}

// isDigits reports whether every rune typed is a decimal digit.
func isDigits(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
