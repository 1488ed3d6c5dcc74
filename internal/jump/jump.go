// Package jump reconciles the operator's jump input fields with the jump the
// server has confirmed.
package jump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/r-owen/toika-loom-client/internal/pattern"
	"github.com/r-owen/toika-loom-client/internal/protocol"
)

var ErrNotANumber = errors.New("not a number")

// Fields is the raw text of the two jump inputs.
type Fields struct {
	Pick   string
	Repeat string
}

// FromTarget renders a server jump back into field text; nil becomes "".
func FromTarget(target pattern.JumpTarget) Fields {
	return Fields{Pick: format(target.PickNumber), Repeat: format(target.RepeatNumber)}
}

// Affordance says what the jump form should offer.
type Affordance struct {
	PickDirty   bool
	RepeatDirty bool
	Submit      bool
	Reset       bool
}

// ParseField converts field text to a value; empty text is nil.
func ParseField(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q", ErrNotANumber, text)
		}
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	return &v, nil
}

// Evaluate compares the fields with the confirmed target. Unparseable text
// counts as dirty.
func Evaluate(f Fields, target pattern.JumpTarget) Affordance {
	var a Affordance
	a.PickDirty = dirty(f.Pick, target.PickNumber)
	a.RepeatDirty = dirty(f.Repeat, target.RepeatNumber)
	a.Submit = a.PickDirty || a.RepeatDirty
	a.Reset = a.Submit || strings.TrimSpace(f.Pick) != "" || strings.TrimSpace(f.Repeat) != ""
	return a
}

// Command builds the jump request for the current fields.
func Command(f Fields) (protocol.JumpToPick, error) {
	pick, err := ParseField(f.Pick)
	if err != nil {
		return protocol.JumpToPick{}, fmt.Errorf("pick: %w", err)
	}
	repeat, err := ParseField(f.Repeat)
	if err != nil {
		return protocol.JumpToPick{}, fmt.Errorf("repeat: %w", err)
	}
	return protocol.JumpToPick{PickNumber: pick, RepeatNumber: repeat}, nil
}

// ResetCommand cancels any pending jump.
func ResetCommand() protocol.JumpToPick {
	return protocol.JumpToPick{}
}

func dirty(text string, confirmed *int) bool {
	v, err := ParseField(text)
	if err != nil {
		return true
	}
	if v == nil || confirmed == nil {
		return (v == nil) != (confirmed == nil)
	}
	return *v != *confirmed
}

func format(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
