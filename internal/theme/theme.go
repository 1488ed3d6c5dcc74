package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/r-owen/toika-loom-client/internal/protocol"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Uploading             *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	CurrentItem           *lipgloss.Style
	Separator             *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	Status                *lipgloss.Style
	StatusError           *lipgloss.Style
	Forward               *lipgloss.Style
	Reverse               *lipgloss.Style
	Label                 *lipgloss.Style
	Field                 *lipgloss.Style
	FieldDirty            *lipgloss.Style
	FieldFocused          *lipgloss.Style
	Disabled              *lipgloss.Style
	Diagnostics           *lipgloss.Style
	SeverityInfo          *lipgloss.Style
	SeverityWarning       *lipgloss.Style
	SeverityError         *lipgloss.Style
}

var defaultStyles = Styles{
	Uploading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	CurrentItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	StatusError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Forward: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Reverse: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Field: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	FieldDirty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("218")),
	),
	FieldFocused: ptr(
		lipgloss.NewStyle().Underline(true),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Diagnostics: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SeverityInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
	),
	SeverityWarning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	),
	SeverityError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// ForSeverity picks the banner style; unknown severities render as info.
func (s *Styles) ForSeverity(sev protocol.Severity) *lipgloss.Style {
	switch sev.Effective() {
	case protocol.SeverityWarning:
		return s.SeverityWarning
	case protocol.SeverityError:
		return s.SeverityError
	default:
		return s.SeverityInfo
	}
}

// ForStatus picks the status line style.
func (s *Styles) ForStatus(isError bool) *lipgloss.Style {
	if isError {
		return s.StatusError
	}
	return s.Status
}

// ForDirection picks the direction arrow and its style: ↓ forward, ↑ reverse.
func (s *Styles) ForDirection(forward bool) (string, *lipgloss.Style) {
	if forward {
		return "↓", s.Forward
	}
	return "↑", s.Reverse
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
