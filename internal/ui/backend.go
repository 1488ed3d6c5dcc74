package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/backend"
	"github.com/r-owen/toika-loom-client/internal/logging"
	"github.com/r-owen/toika-loom-client/internal/transport"
	uistate "github.com/r-owen/toika-loom-client/internal/ui/state"
)

func waitForSocketEvent(ch <-chan transport.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return socketDoneMsg{}
		}
		return socketEventMsg{event: evt}
	}
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type socketEventMsg struct {
	event transport.Event
}

type socketDoneMsg struct{}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleSocketEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(socketEventMsg)
	if !ok {
		return nil
	}
	m.applySocketEvent(eventMsg.event)
	if m.events != nil {
		return waitForSocketEvent(m.events)
	}
	return nil
}

func (m *Model) handleSocketDoneMsg(tea.Msg) tea.Cmd {
	m.events = nil
	return nil
}

func (m *Model) applySocketEvent(evt transport.Event) {
	if evt.Closed {
		m.client.Lost = true
		m.client.LostReason = evt.Reason
		return
	}
	next, res, err := m.dispatcher.Apply(m.client, evt.Data)
	m.client = next
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	if res.PatternReplaced {
		m.engine.Invalidate()
	}
	if res.NamesChanged {
		m.menu.UpdateItems(uistate.PatternItems(m.client.PatternNames))
		m.menu.SetCurrent(m.client.PatternName())
	}
	if res.JumpChanged {
		m.syncJumpFields()
	}
	if res.PatternRedraw {
		m.redraw()
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.watcher != nil {
		waitCmd := waitForBackendEvent(m.watcher)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	switch evt.Kind {
	case backend.KindError:
		if evt.Err != nil {
			logging.Error(evt.Err)
			m.errMsg = fmt.Sprintf("watch: %v", evt.Err)
		}
		return nil
	case backend.KindFiles:
		if len(evt.Files) == 0 {
			return nil
		}
		return m.startUpload(evt.Files)
	}
	return nil
}
