package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/r-owen/toika-loom-client/internal/protocol"
	"github.com/r-owen/toika-loom-client/internal/testutil"
)

func dial(t *testing.T, server *testutil.LoomServer) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, server.URL())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func nextEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt, ok := <-c.Events():
		if !ok {
			t.Fatalf("event channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
	return Event{}
}

func TestClientReceivesFramesInOrder(t *testing.T) {
	server := testutil.StartLoomServer(t)
	c := dial(t, server)
	server.PushRaw([]byte(`{"type":"WeaveDirection","forward":true}`))
	server.PushRaw([]byte(`{"type":"PatternNames","names":[]}`))
	first := nextEvent(t, c)
	second := nextEvent(t, c)
	if string(first.Data) != `{"type":"WeaveDirection","forward":true}` {
		t.Fatalf("unexpected first frame %s", first.Data)
	}
	if string(second.Data) != `{"type":"PatternNames","names":[]}` {
		t.Fatalf("unexpected second frame %s", second.Data)
	}
}

func TestClientSendsCommands(t *testing.T) {
	server := testutil.StartLoomServer(t)
	c := dial(t, server)
	if err := c.Send(context.Background(), protocol.OOBCommand{Command: protocol.OOBNextPick}); err != nil {
		t.Fatalf("send: %v", err)
	}
	cmd := server.Next()
	if cmd["type"] != "oobcommand" || cmd["command"] != "n" {
		t.Fatalf("unexpected command %v", cmd)
	}
}

func TestClientReportsCloseReason(t *testing.T) {
	server := testutil.StartLoomServer(t)
	c := dial(t, server)
	server.CloseWith("server shutting down")
	evt := nextEvent(t, c)
	if !evt.Closed || evt.Reason != "server shutting down" {
		t.Fatalf("expected close with reason, got %+v", evt)
	}
	if _, ok := <-c.Events(); ok {
		t.Fatalf("expected channel closed after close event")
	}
	err := c.Send(context.Background(), protocol.ClearPatternNames{})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Dial(ctx, "ws://127.0.0.1:1/ws"); err == nil {
		t.Fatalf("expected dial error")
	}
}

func TestCloseReleasesBlockedReader(t *testing.T) {
	server := testutil.StartLoomServer(t)
	c := dial(t, server)
	for i := 0; i < eventBuffer+4; i++ {
		server.PushRaw([]byte(`{"type":"WeaveDirection","forward":true}`))
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(c.Events()) < eventBuffer {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d buffered events, got %d", eventBuffer, len(c.Events()))
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-c.Events():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatalf("expected event channel closed after Close")
		}
	}
}
