package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/protocol"
	"github.com/r-owen/toika-loom-client/internal/testutil"
	"github.com/r-owen/toika-loom-client/internal/transport"
)

func nextSocketEvent(t *testing.T, ch <-chan transport.Event) transport.Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		if !ok {
			t.Fatalf("event channel closed early")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for socket event")
	}
	return transport.Event{}
}

func TestModelAgainstLoomServer(t *testing.T) {
	server := testutil.StartLoomServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := transport.Dial(ctx, server.URL())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	h := NewHarness(NewModel(Options{Context: ctx, Sender: client, Width: 80, Height: 24}))
	forward := func() {
		h.Send(socketEventMsg{event: nextSocketEvent(t, client.Events())})
	}

	server.PushRaw(testutil.Frame(t, protocol.LoomConnectionState{State: protocol.Connected}))
	forward()
	server.PushRaw(testutil.Frame(t, testutil.PatternMessage("twill.wif", 8, 40)))
	forward()
	if h.Model().Client().PatternName() != "twill.wif" {
		t.Fatalf("expected pattern loaded, got %q", h.Model().Client().PatternName())
	}

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	got := server.Next()
	if got["type"] != "oobcommand" || got["command"] != protocol.OOBNextPick {
		t.Fatalf("unexpected command %v", got)
	}

	server.PushRaw(testutil.Frame(t, protocol.CurrentPickNumber{PickNumber: 2, RepeatNumber: 1}))
	forward()
	if pick := h.Model().Client().Pattern.PickNumber; pick != 2 {
		t.Fatalf("expected pick 2, got %d", pick)
	}

	server.CloseWith("bye")
	forward()
	status := h.Model().Client().Status()
	if !status.Error || status.Text != "lost connection to server: bye" {
		t.Fatalf("unexpected status %+v", status)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	if h.Model().Client().LastSent != protocol.Describe(protocol.OOBCommand{Command: protocol.OOBNextPick}) {
		t.Fatalf("expected refused send to leave last sent unchanged")
	}
}
