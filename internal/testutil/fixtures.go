package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/r-owen/toika-loom-client/internal/protocol"
)

var fixtureColors = []string{"#ffffff", "#000000", "#c0392b", "#2980b9"}

// PatternMessage builds a valid ReducedPattern with the given size. Ends are
// threaded on a straight draw over four shafts and picks follow a 2/2 twill.
func PatternMessage(name string, ends, picks int) protocol.ReducedPattern {
	const shafts = 4
	msg := protocol.ReducedPattern{
		Name:         name,
		ColorTable:   append([]string(nil), fixtureColors...),
		WarpColors:   make([]int, ends),
		Threading:    make([]int, ends),
		Picks:        make([]protocol.Pick, picks),
		RepeatNumber: 1,
	}
	for e := 0; e < ends; e++ {
		msg.WarpColors[e] = 2 + e%2
		msg.Threading[e] = e % shafts
	}
	for p := 0; p < picks; p++ {
		up := make([]bool, shafts)
		up[p%shafts] = true
		up[(p+1)%shafts] = true
		msg.Picks[p] = protocol.Pick{Color: 1, AreShaftsUp: up}
	}
	return msg
}

// Frame marshals a server reply, adding its "type" field.
func Frame(t *testing.T, msg protocol.Message) []byte {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal %T: %v", msg, err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal %T: %v", msg, err)
	}
	fields["type"] = msg.MessageType()
	if cs, ok := msg.(protocol.LoomConnectionState); ok {
		fields = map[string]interface{}{"type": msg.MessageType(), "state": int(cs.State), "reason": cs.Reason}
	}
	out, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return out
}

// WritePatternFiles creates pattern files in dir, each holding
// "contents of NAME", and returns their paths in the order given.
func WritePatternFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("contents of "+name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}
