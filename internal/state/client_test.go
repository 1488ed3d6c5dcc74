package state

import (
	"testing"

	"github.com/r-owen/toika-loom-client/internal/protocol"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		text   string
		isErr  bool
	}{
		{"initial", NewClient(), "disconnected", true},
		{"connecting with reason", Client{Connection: protocol.Connecting, Reason: "retrying"}, "connecting retrying", true},
		{"connected no loom state", Client{Connection: protocol.Connected}, "connected", false},
		{"loom error", Client{Connection: protocol.Connected, Loom: &LoomStatus{Error: true, ShedFullyClosed: true}}, "error", true},
		{"ready", Client{Connection: protocol.Connected, Loom: &LoomStatus{ShedFullyClosed: true}}, "ready", false},
		{"moving", Client{Connection: protocol.Connected, Loom: &LoomStatus{}}, "shafts moving", false},
		{"lost", Client{Connection: protocol.Connected, Lost: true, LostReason: "eof"}, "lost connection to server: eof", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.client.Status()
			if got.Text != tt.text || got.Error != tt.isErr {
				t.Fatalf("expected %q (error=%v), got %q (error=%v)", tt.text, tt.isErr, got.Text, got.Error)
			}
		})
	}
}

func TestNewClientDefaultsForward(t *testing.T) {
	c := NewClient()
	if !c.Forward {
		t.Fatalf("expected forward by default")
	}
	if c.HasPattern() || c.PatternName() != "" {
		t.Fatalf("expected no pattern")
	}
}

func TestCloneIsolatesMutableFields(t *testing.T) {
	four := 4
	c := Client{
		PatternNames: []string{"a", "b"},
		Loom:         &LoomStatus{ShedFullyClosed: true},
	}
	c.Jump.PickNumber = &four
	dup := c.Clone()
	dup.PatternNames[0] = "z"
	dup.Loom.ShedFullyClosed = false
	*dup.Jump.PickNumber = 9
	if c.PatternNames[0] != "a" || !c.Loom.ShedFullyClosed || *c.Jump.PickNumber != 4 {
		t.Fatalf("expected original untouched, got %+v", c)
	}
}
