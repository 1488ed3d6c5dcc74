package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Menu         key.Binding
	Jump         key.Binding
	Submit       key.Binding
	ResetJump    key.Binding
	NextField    key.Binding
	Direction    key.Binding
	Upload       key.Binding
	Copy         key.Binding
	Snapshot     key.Binding
	Help         key.Binding
	Back         key.Binding
	Up           key.Binding
	Down         key.Binding
	Home         key.Binding
	End          key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	OOBDirection key.Binding
	OOBClose     key.Binding
	OOBNextPick  key.Binding
	OOBError     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Menu:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "patterns")),
		Jump:         key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "jump")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		ResetJump:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset jump")),
		NextField:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Direction:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weave direction")),
		Upload:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "upload")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy last read")),
		Snapshot:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapshot")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:           key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Home:         key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:          key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		OOBDirection: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "oob direction")),
		OOBClose:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "oob close")),
		OOBNextPick:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "oob next pick")),
		OOBError:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "oob error")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Jump, k.Direction, k.Upload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Menu, k.Jump, k.Submit, k.ResetJump, k.NextField},
		{k.Direction, k.Upload, k.Copy, k.Snapshot},
		{k.OOBDirection, k.OOBClose, k.OOBNextPick, k.OOBError},
		{k.Back, k.Help, k.Quit},
	}
}
