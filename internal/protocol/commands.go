package protocol

import (
	"encoding/json"
	"fmt"
)

// OOB command codes understood by the server's loom simulator.
const (
	OOBChangeDirection = "d"
	OOBCloseConnection = "c"
	OOBNextPick        = "n"
	OOBToggleError     = "e"
)

// Command is an outbound request to the loom server.
type Command interface {
	CommandType() string
	wire() any
}

// FileCommand uploads one pattern file.
type FileCommand struct {
	Name string
	Data string
}

// SelectPattern asks the server to load a known pattern.
type SelectPattern struct {
	Name string
}

// ClearPatternNames asks the server to forget its recent pattern list.
type ClearPatternNames struct{}

// JumpToPick requests a jump. Nil fields are sent as null; both nil resets
// the pending jump.
type JumpToPick struct {
	PickNumber   *int
	RepeatNumber *int
}

// OOBCommand sends an out-of-band command code.
type OOBCommand struct {
	Command string
}

// SetWeaveDirection asks the server to weave forward or in reverse.
type SetWeaveDirection struct {
	Forward bool
}

func (FileCommand) CommandType() string       { return "file" }
func (SelectPattern) CommandType() string     { return "select_pattern" }
func (ClearPatternNames) CommandType() string { return "clear_pattern_names" }
func (JumpToPick) CommandType() string        { return "jump_to_pick" }
func (OOBCommand) CommandType() string        { return "oobcommand" }
func (SetWeaveDirection) CommandType() string { return "weave_direction" }

func (c FileCommand) wire() any {
	return struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Data string `json:"data"`
	}{c.CommandType(), c.Name, c.Data}
}

func (c SelectPattern) wire() any {
	return struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{c.CommandType(), c.Name}
}

func (c ClearPatternNames) wire() any {
	return struct {
		Type string `json:"type"`
	}{c.CommandType()}
}

func (c JumpToPick) wire() any {
	return struct {
		Type         string `json:"type"`
		PickNumber   *int   `json:"pick_number"`
		RepeatNumber *int   `json:"repeat_number"`
	}{c.CommandType(), c.PickNumber, c.RepeatNumber}
}

func (c OOBCommand) wire() any {
	return struct {
		Type    string `json:"type"`
		Command string `json:"command"`
	}{c.CommandType(), c.Command}
}

func (c SetWeaveDirection) wire() any {
	return struct {
		Type    string `json:"type"`
		Forward bool   `json:"forward"`
	}{c.CommandType(), c.Forward}
}

// Encode serializes cmd as a flat JSON object led by its type.
func Encode(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, fmt.Errorf("encode: nil command")
	}
	data, err := json.Marshal(cmd.wire())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.CommandType(), err)
	}
	return data, nil
}

// Describe returns the echo shown to the operator after sending cmd.
func Describe(cmd Command) string {
	data, err := Encode(cmd)
	if err != nil {
		return cmd.CommandType()
	}
	return Echo(string(data))
}

// IntPtr is a convenience for building JumpToPick literals.
func IntPtr(v int) *int {
	return &v
}
