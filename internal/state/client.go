// Package state holds the client's view of the loom server: everything the
// display needs, reconciled from the replies the server pushes.
package state

import (
	"github.com/r-owen/toika-loom-client/internal/pattern"
	"github.com/r-owen/toika-loom-client/internal/protocol"
)

// LoomStatus mirrors the last LoomState reply.
type LoomStatus struct {
	ShedFullyClosed bool
	PickWanted      bool
	Error           bool
}

// Problem is the command-problem banner. An empty Message hides it.
type Problem struct {
	Message  string
	Severity protocol.Severity
}

// Visible reports whether the banner has anything to show.
func (p Problem) Visible() bool {
	return p.Message != ""
}

// Status is the one-line connection/loom summary.
type Status struct {
	Text  string
	Error bool
}

// Client is the reconciled view model. It is a value type: the dispatcher
// returns a new Client for every reply instead of mutating shared state.
type Client struct {
	Pattern      *pattern.Pattern
	Jump         pattern.JumpTarget
	Connection   protocol.ConnectionState
	Reason       string
	Loom         *LoomStatus
	Forward      bool
	PatternNames []string
	Problem      Problem
	LastRead     string
	LastSent     string
	Lost         bool
	LostReason   string
}

// NewClient returns the state before any reply has arrived.
func NewClient() Client {
	return Client{Connection: protocol.Disconnected, Forward: true}
}

// HasPattern reports whether a pattern is loaded.
func (c Client) HasPattern() bool {
	return c.Pattern != nil
}

// PatternName is the loaded pattern's name, or "" when none is loaded.
func (c Client) PatternName() string {
	if c.Pattern == nil {
		return ""
	}
	return c.Pattern.Name
}

// Status derives the status line from the connection and loom state.
func (c Client) Status() Status {
	if c.Lost {
		return Status{Text: "lost connection to server: " + c.LostReason, Error: true}
	}
	if c.Connection != protocol.Connected {
		text := c.Connection.String()
		if c.Reason != "" {
			text += " " + c.Reason
		}
		return Status{Text: text, Error: true}
	}
	if c.Loom == nil {
		return Status{Text: c.Connection.String()}
	}
	switch {
	case c.Loom.Error:
		return Status{Text: "error", Error: true}
	case c.Loom.ShedFullyClosed:
		return Status{Text: "ready"}
	default:
		return Status{Text: "shafts moving"}
	}
}

// Clone returns a copy that shares no mutable data with c. The pattern is
// immutable and shared.
func (c Client) Clone() Client {
	out := c
	out.Jump = c.Jump.Clone()
	out.PatternNames = cloneNames(c.PatternNames)
	if c.Loom != nil {
		loom := *c.Loom
		out.Loom = &loom
	}
	return out
}

func cloneNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	dup := make([]string, len(names))
	copy(dup, names)
	return dup
}
