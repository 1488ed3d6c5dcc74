package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/protocol"
	uistate "github.com/r-owen/toika-loom-client/internal/ui/state"
)

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	l := m.menu
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setFocus(FocusPattern)
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.selectMenuItem()
	case key.Matches(msg, m.keys.Up):
		if l.MoveCursorUp() {
			events.UI.MenuCursor(l.ID, l.Cursor)
		}
	case key.Matches(msg, m.keys.Down):
		if l.MoveCursorDown() {
			events.UI.MenuCursor(l.ID, l.Cursor)
		}
	case key.Matches(msg, m.keys.Home):
		l.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		l.MoveCursorEnd()
	case key.Matches(msg, m.keys.PageUp):
		l.MoveCursorPageUp(m.menuRows())
	case key.Matches(msg, m.keys.PageDown):
		l.MoveCursorPageDown(m.menuRows())
	default:
		m.handleFilterKey(msg)
	}
	l.EnsureCursorVisible(m.menuRows())
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) {
	l := m.menu
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		if l.InsertFilterText(text) {
			events.Filter.Append(l.ID, l.Filter)
		}
	case tea.KeyBackspace:
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
	case tea.KeyCtrlU:
		if l.Filter != "" {
			l.SetFilter("", 0)
			events.Filter.Cleared(l.ID)
		}
	case tea.KeyCtrlW:
		if l.DeleteFilterSegmentBackward() {
			events.Filter.SegmentBackspace(l.ID, l.Filter)
		}
	case tea.KeyLeft:
		if l.MoveFilterCursor(-1) {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
	case tea.KeyRight:
		if l.MoveFilterCursor(1) {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
	case tea.KeyCtrlA:
		if l.MoveFilterCursorStart() {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
	case tea.KeyCtrlE:
		if l.MoveFilterCursorEnd() {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
	}
}

// selectMenuItem acts on the highlighted entry: a pattern name selects that
// pattern, "Clear Recents" clears the server's list.
func (m *Model) selectMenuItem() tea.Cmd {
	item, ok := m.menu.Selected()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(m.menu.ID, item.ID, item.Label, m.menu.Filter)
	m.setFocus(FocusPattern)
	switch item.Kind {
	case uistate.ItemClearRecents:
		return m.send(protocol.ClearPatternNames{}, "clear recents")
	case uistate.ItemPattern:
		return m.send(protocol.SelectPattern{Name: item.ID}, "select pattern")
	}
	return nil
}
