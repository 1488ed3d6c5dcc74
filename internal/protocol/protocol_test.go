package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeCurrentPickNumber(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"CurrentPickNumber","pick_number":7,"repeat_number":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cur, ok := msg.(CurrentPickNumber)
	if !ok {
		t.Fatalf("expected CurrentPickNumber, got %T", msg)
	}
	if cur.PickNumber != 7 || cur.RepeatNumber != 2 {
		t.Fatalf("expected 7/2, got %d/%d", cur.PickNumber, cur.RepeatNumber)
	}
}

func TestDecodeJumpPickNumberNulls(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"JumpPickNumber","pick_number":null,"repeat_number":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jump := msg.(JumpPickNumber)
	if jump.PickNumber != nil || jump.RepeatNumber != nil {
		t.Fatalf("expected nil jump fields, got %+v", jump)
	}
	msg, err = Decode([]byte(`{"type":"JumpPickNumber","pick_number":4,"repeat_number":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jump = msg.(JumpPickNumber)
	if jump.PickNumber == nil || *jump.PickNumber != 4 || jump.RepeatNumber != nil {
		t.Fatalf("expected pick 4 and nil repeat, got %+v", jump)
	}
}

func TestDecodeLoomConnectionState(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"LoomConnectionState","state":2,"reason":"dialing"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := msg.(LoomConnectionState)
	if state.State != Connecting || state.Reason != "dialing" {
		t.Fatalf("expected connecting/dialing, got %v/%q", state.State, state.Reason)
	}
}

func TestDecodeUnknownConnectionState(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"out of range", `{"type":"LoomConnectionState","state":9,"reason":""}`},
		{"negative", `{"type":"LoomConnectionState","state":-1,"reason":""}`},
		{"missing", `{"type":"LoomConnectionState","reason":"x"}`},
		{"null", `{"type":"LoomConnectionState","state":null,"reason":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode([]byte(tt.raw))
			if !errors.Is(err, ErrUnknownConnectionState) {
				t.Fatalf("expected ErrUnknownConnectionState, got %v (%+v)", err, msg)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", `not json`, ErrMalformed},
		{"no type", `{"pick_number":3}`, ErrMissingType},
		{"empty type", `{"type":""}`, ErrMissingType},
		{"wrong field type", `{"type":"WeaveDirection","forward":"yes"}`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"StatusMessage","message":"hi"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unknown, ok := msg.(Unknown)
	if !ok || unknown.Kind != "StatusMessage" {
		t.Fatalf("expected Unknown StatusMessage, got %#v", msg)
	}
}

func TestDecodeReducedPatternIgnoresExtraFields(t *testing.T) {
	raw := `{"type":"ReducedPattern","name":"a.wif","color_table":["#ff0000"],` +
		`"warp_colors":[0],"threading":[0],"picks":[{"color":0,"are_shafts_up":[true]}],` +
		`"pick0":{"color":0,"are_shafts_up":[false]},"pick_number":1,"repeat_number":1}`
	msg, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pat := msg.(ReducedPattern)
	if pat.Name != "a.wif" || len(pat.Picks) != 1 || !pat.Picks[0].AreShaftsUp[0] {
		t.Fatalf("unexpected pattern %+v", pat)
	}
}

func TestDecodeCommandProblemKeepsUnknownSeverity(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"CommandProblem","message":"odd","severity":7}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	problem := msg.(CommandProblem)
	if problem.Severity != 7 {
		t.Fatalf("expected raw severity 7, got %d", problem.Severity)
	}
	if problem.Severity.Effective() != SeverityInfo {
		t.Fatalf("expected unknown severity to fall back to info, got %v", problem.Severity.Effective())
	}
}

func TestEncodeCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"file", FileCommand{Name: "p1.wif", Data: "abc"}, `{"type":"file","name":"p1.wif","data":"abc"}`},
		{"select", SelectPattern{Name: "p1.wif"}, `{"type":"select_pattern","name":"p1.wif"}`},
		{"clear", ClearPatternNames{}, `{"type":"clear_pattern_names"}`},
		{"jump", JumpToPick{PickNumber: IntPtr(5), RepeatNumber: IntPtr(2)}, `{"type":"jump_to_pick","pick_number":5,"repeat_number":2}`},
		{"jump partial", JumpToPick{PickNumber: IntPtr(5)}, `{"type":"jump_to_pick","pick_number":5,"repeat_number":null}`},
		{"jump reset", JumpToPick{}, `{"type":"jump_to_pick","pick_number":null,"repeat_number":null}`},
		{"oob", OOBCommand{Command: OOBNextPick}, `{"type":"oobcommand","command":"n"}`},
		{"direction", SetWeaveDirection{Forward: false}, `{"type":"weave_direction","forward":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.cmd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, data)
			}
		})
	}
}

func TestEchoTruncatesAtLimit(t *testing.T) {
	short := strings.Repeat("x", EchoLimit)
	if got := Echo(short); got != short {
		t.Fatalf("expected untouched text, got %q", got)
	}
	long := strings.Repeat("y", EchoLimit+5)
	got := Echo(long)
	if got != strings.Repeat("y", EchoLimit)+"..." {
		t.Fatalf("expected truncated echo, got %q", got)
	}
}

func TestDescribeTruncatesFileUpload(t *testing.T) {
	got := Describe(FileCommand{Name: "big.wif", Data: strings.Repeat("z", 500)})
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != EchoLimit+3 {
		t.Fatalf("expected truncated description, got %q", got)
	}
	if !strings.HasPrefix(got, `{"type":"file","name":"big.wif"`) {
		t.Fatalf("expected description to lead with type and name, got %q", got)
	}
}
