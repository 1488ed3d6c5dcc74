package protocol

import "fmt"

// ConnectionState is the server's link state to the loom.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connected
	Connecting
	Disconnecting
)

var connectionStateNames = [...]string{
	Disconnected:  "disconnected",
	Connected:     "connected",
	Connecting:    "connecting",
	Disconnecting: "disconnecting",
}

// ParseConnectionState maps a wire code onto the closed state table.
func ParseConnectionState(code int) (ConnectionState, error) {
	if code < 0 || code >= len(connectionStateNames) {
		return Disconnected, fmt.Errorf("%w: %d", ErrUnknownConnectionState, code)
	}
	return ConnectionState(code), nil
}

func (c ConnectionState) String() string {
	if c < 0 || int(c) >= len(connectionStateNames) {
		return fmt.Sprintf("ConnectionState(%d)", int(c))
	}
	return connectionStateNames[c]
}

// Severity grades a CommandProblem. Codes outside the known range are kept
// as-is and rendered as SeverityInfo.
type Severity int

const (
	SeverityInfo    Severity = 1
	SeverityWarning Severity = 2
	SeverityError   Severity = 3
)

// Known reports whether s is one of the defined severities.
func (s Severity) Known() bool {
	return s >= SeverityInfo && s <= SeverityError
}

// Effective returns s, or SeverityInfo when s is not a known severity.
func (s Severity) Effective() Severity {
	if !s.Known() {
		return SeverityInfo
	}
	return s
}

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}
