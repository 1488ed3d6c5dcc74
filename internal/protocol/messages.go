// Package protocol defines the JSON messages exchanged with the loom server:
// the replies it pushes to the client and the commands the client sends back.
//
// Every frame is a flat JSON object carrying a "type" discriminator. Decode
// turns an inbound frame into one of the typed Message values below; Encode
// serializes an outbound Command.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// EchoLimit caps the number of characters shown when a raw frame or a sent
// command is echoed back to the operator.
const EchoLimit = 80

var (
	ErrMalformed              = errors.New("malformed message")
	ErrMissingType            = errors.New("message has no type")
	ErrUnknownConnectionState = errors.New("unknown loom connection state")
)

// Message is a decoded server reply.
type Message interface {
	MessageType() string
}

const (
	TypeCurrentPickNumber   = "CurrentPickNumber"
	TypeJumpPickNumber      = "JumpPickNumber"
	TypeLoomConnectionState = "LoomConnectionState"
	TypeLoomState           = "LoomState"
	TypeReducedPattern      = "ReducedPattern"
	TypePatternNames        = "PatternNames"
	TypeCommandProblem      = "CommandProblem"
	TypeWeaveDirection      = "WeaveDirection"
)

// CurrentPickNumber reports the pick and repeat the loom is positioned at.
type CurrentPickNumber struct {
	PickNumber   int `json:"pick_number"`
	RepeatNumber int `json:"repeat_number"`
}

// JumpPickNumber reports the pending jump; nil fields clear it.
type JumpPickNumber struct {
	PickNumber   *int `json:"pick_number"`
	RepeatNumber *int `json:"repeat_number"`
}

// LoomConnectionState reports the server's link to the loom.
type LoomConnectionState struct {
	State  ConnectionState
	Reason string
}

// LoomState reports the loom hardware status word.
type LoomState struct {
	ShedFullyClosed bool `json:"shed_fully_closed"`
	PickWanted      bool `json:"pick_wanted"`
	Error           bool `json:"error"`
}

// Pick is one weft row as sent on the wire.
type Pick struct {
	Color       int    `json:"color"`
	AreShaftsUp []bool `json:"are_shafts_up"`
}

// ReducedPattern carries a complete pattern. Colour table entries are
// "#rrggbb" strings; all indices are 0-based.
type ReducedPattern struct {
	Name         string   `json:"name"`
	ColorTable   []string `json:"color_table"`
	WarpColors   []int    `json:"warp_colors"`
	Threading    []int    `json:"threading"`
	Picks        []Pick   `json:"picks"`
	PickNumber   int      `json:"pick_number"`
	RepeatNumber int      `json:"repeat_number"`
}

// PatternNames lists the patterns the server currently knows about.
type PatternNames struct {
	Names []string `json:"names"`
}

// CommandProblem is an advisory problem report about a client command.
type CommandProblem struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// WeaveDirection reports whether the loom weaves forward.
type WeaveDirection struct {
	Forward bool `json:"forward"`
}

// Unknown is returned for frames whose type is not recognized.
type Unknown struct {
	Kind string
}

func (CurrentPickNumber) MessageType() string   { return TypeCurrentPickNumber }
func (JumpPickNumber) MessageType() string      { return TypeJumpPickNumber }
func (LoomConnectionState) MessageType() string { return TypeLoomConnectionState }
func (LoomState) MessageType() string           { return TypeLoomState }
func (ReducedPattern) MessageType() string      { return TypeReducedPattern }
func (PatternNames) MessageType() string        { return TypePatternNames }
func (CommandProblem) MessageType() string      { return TypeCommandProblem }
func (WeaveDirection) MessageType() string      { return TypeWeaveDirection }
func (u Unknown) MessageType() string           { return u.Kind }

type envelope struct {
	Type *string `json:"type"`
}

type connectionStateWire struct {
	State  *int   `json:"state"`
	Reason string `json:"reason"`
}

// Decode parses one inbound frame. Frames with an unrecognized type decode to
// Unknown without error; the caller decides how loudly to ignore them.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == nil || strings.TrimSpace(*env.Type) == "" {
		return nil, ErrMissingType
	}
	kind := *env.Type
	switch kind {
	case TypeCurrentPickNumber:
		return decodeInto[CurrentPickNumber](kind, data)
	case TypeJumpPickNumber:
		return decodeInto[JumpPickNumber](kind, data)
	case TypeLoomConnectionState:
		wire, err := decodeInto[connectionStateWire](kind, data)
		if err != nil {
			return nil, err
		}
		if wire.State == nil {
			return nil, fmt.Errorf("%w: state missing", ErrUnknownConnectionState)
		}
		state, err := ParseConnectionState(*wire.State)
		if err != nil {
			return nil, err
		}
		return LoomConnectionState{State: state, Reason: wire.Reason}, nil
	case TypeLoomState:
		return decodeInto[LoomState](kind, data)
	case TypeReducedPattern:
		return decodeInto[ReducedPattern](kind, data)
	case TypePatternNames:
		return decodeInto[PatternNames](kind, data)
	case TypeCommandProblem:
		return decodeInto[CommandProblem](kind, data)
	case TypeWeaveDirection:
		return decodeInto[WeaveDirection](kind, data)
	default:
		return Unknown{Kind: kind}, nil
	}
}

func decodeInto[T any](kind string, data []byte) (T, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %s: %v", ErrMalformed, kind, err)
	}
	return msg, nil
}

// Echo returns text limited to EchoLimit characters, with a trailing
// ellipsis when anything was cut.
func Echo(text string) string {
	runes := []rune(text)
	if len(runes) <= EchoLimit {
		return text
	}
	return string(runes[:EchoLimit]) + "..."
}
