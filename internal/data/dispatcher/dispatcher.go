// Package dispatcher reconciles loom server replies into the client view
// model. Apply is pure: it takes the current state and one raw frame and
// returns the next state plus flags telling the UI what to redraw.
package dispatcher

import (
	"fmt"

	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/pattern"
	"github.com/r-owen/toika-loom-client/internal/protocol"
	"github.com/r-owen/toika-loom-client/internal/state"
)

// Result reports which parts of the display a reply touched.
type Result struct {
	Type             string
	PatternRedraw    bool
	PatternReplaced  bool
	PickChanged      bool
	JumpChanged      bool
	StatusChanged    bool
	NamesChanged     bool
	DirectionChanged bool
	ProblemChanged   bool
	ClearProblem     bool
	Discarded        bool
	Unknown          bool
}

type Dispatcher struct{}

func New() *Dispatcher {
	return &Dispatcher{}
}

// Apply decodes raw and folds it into s. On error the returned state differs
// from s only in LastRead.
func (d *Dispatcher) Apply(s state.Client, raw []byte) (state.Client, Result, error) {
	next := s.Clone()
	next.LastRead = protocol.Echo(string(raw))

	msg, err := protocol.Decode(raw)
	if err != nil {
		events.Protocol.DecodeError(err)
		return next, Result{}, err
	}
	res := Result{Type: msg.MessageType()}
	events.Protocol.Receive(res.Type, len(raw))

	clearProblem := true
	switch m := msg.(type) {
	case protocol.CurrentPickNumber:
		if next.Pattern == nil {
			events.Protocol.Discard(res.Type, "no pattern loaded")
			res.Discarded = true
			return next, res, nil
		}
		moved, err := next.Pattern.WithPosition(m.PickNumber, m.RepeatNumber)
		if err != nil {
			err = fmt.Errorf("%s: %w", res.Type, err)
			events.Protocol.DecodeError(err)
			return rollback(s, next), Result{}, err
		}
		next.Pattern = moved
		res.PatternRedraw = true
		res.PickChanged = true

	case protocol.JumpPickNumber:
		next.Jump = pattern.JumpTarget{PickNumber: m.PickNumber, RepeatNumber: m.RepeatNumber}
		if next.Pattern == nil {
			next.Jump = pattern.JumpTarget{}
		}
		res.JumpChanged = true
		res.PatternRedraw = true
		res.PickChanged = true

	case protocol.LoomConnectionState:
		next.Connection = m.State
		next.Reason = m.Reason
		res.StatusChanged = true

	case protocol.LoomState:
		clearProblem = false
		next.Loom = &state.LoomStatus{
			ShedFullyClosed: m.ShedFullyClosed,
			PickWanted:      m.PickWanted,
			Error:           m.Error,
		}
		res.StatusChanged = true

	case protocol.ReducedPattern:
		p, err := pattern.FromMessage(m)
		if err != nil {
			events.Protocol.DecodeError(err)
			return rollback(s, next), Result{}, err
		}
		next.Pattern = p
		res.PatternReplaced = true
		res.PatternRedraw = true
		res.PickChanged = true
		res.NamesChanged = true

	case protocol.PatternNames:
		next.PatternNames = append([]string(nil), m.Names...)
		res.NamesChanged = true

	case protocol.CommandProblem:
		clearProblem = false
		next.Problem = state.Problem{Message: m.Message, Severity: m.Severity}
		res.ProblemChanged = true

	case protocol.WeaveDirection:
		next.Forward = m.Forward
		res.DirectionChanged = true

	default:
		events.Protocol.Unknown(res.Type)
		res.Unknown = true
		return next, res, nil
	}

	if clearProblem {
		res.ClearProblem = true
		if next.Problem.Visible() {
			res.ProblemChanged = true
		}
		next.Problem = state.Problem{}
	}
	return next, res, nil
}

func rollback(prev, next state.Client) state.Client {
	out := prev.Clone()
	out.LastRead = next.LastRead
	return out
}
