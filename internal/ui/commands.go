package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/logging"
	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/protocol"
	"github.com/r-owen/toika-loom-client/internal/ui/command"
	"github.com/r-owen/toika-loom-client/internal/upload"
)

const (
	refusedUploading = "upload in progress"
	refusedLost      = "not connected to server"
)

type clipboardResultMsg struct {
	text string
	err  error
}

type snapshotResultMsg struct {
	path string
	err  error
}

// send queues cmd on the bus unless an upload batch or a dead socket forbids
// it. LastSent is updated before the write, as the operator expects.
func (m *Model) send(cmd protocol.Command, label string) tea.Cmd {
	if reason := m.refusal(); reason != "" {
		events.Command.Refused(cmd.CommandType(), reason)
		m.setInfo(fmt.Sprintf("%s: %s", label, reason))
		return nil
	}
	m.client.LastSent = protocol.Describe(cmd)
	return m.bus.Execute(command.Request{Command: cmd, Label: label})
}

func (m *Model) refusal() string {
	switch {
	case m.uploading:
		return refusedUploading
	case m.client.Lost:
		return refusedLost
	}
	return ""
}

func (m *Model) handleSentMsg(msg tea.Msg) tea.Cmd {
	sent, ok := msg.(command.SentMsg)
	if !ok {
		return nil
	}
	if sent.Err != nil {
		logging.Error(sent.Err)
		m.errMsg = fmt.Sprintf("%s: %v", sent.Label, sent.Err)
		events.Action.Error(sent.Err)
	}
	return nil
}

// startUpload validates a batch and hands it to the bus. Every other command
// is refused until the batch reports back.
func (m *Model) startUpload(paths []string) tea.Cmd {
	if reason := m.refusal(); reason != "" {
		events.Command.Refused("upload", reason)
		m.setInfo(fmt.Sprintf("upload: %s", reason))
		return nil
	}
	ordered, err := upload.Plan(paths)
	if err != nil {
		m.errMsg = err.Error()
		events.Upload.Error(err)
		return nil
	}
	if len(ordered) == 0 {
		m.setInfo("upload: no files given")
		return nil
	}
	cmd := m.bus.Upload(ordered, m.readFile)
	if cmd == nil {
		return nil
	}
	m.uploading = true
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("uploading %d file(s)…", len(ordered)))
	return cmd
}

func (m *Model) handleUploadMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.UploadMsg)
	if !ok {
		return nil
	}
	m.uploading = false
	if result.LastSent != "" {
		m.client.LastSent = result.LastSent
	}
	if result.Err != nil {
		logging.Error(result.Err)
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		return nil
	}
	m.setInfo(fmt.Sprintf("uploaded; selected %s", result.Selected))
	return nil
}

// parseUploadPaths splits the prompt text on whitespace and expands globs.
// A pattern that matches nothing is kept so the read reports it.
func parseUploadPaths(text string) []string {
	var out []string
	for _, field := range strings.Fields(text) {
		if strings.HasPrefix(field, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				field = filepath.Join(home, field[2:])
			}
		}
		matches, err := filepath.Glob(field)
		if err != nil || len(matches) == 0 {
			out = append(out, field)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func (m *Model) copyLastRead() tea.Cmd {
	text := m.client.LastRead
	if text == "" {
		m.setInfo("nothing read yet")
		return nil
	}
	write := m.copyText
	return func() tea.Msg {
		return clipboardResultMsg{text: text, err: write(text)}
	}
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		events.Action.Error(result.err)
		m.errMsg = fmt.Sprintf("clipboard: %v", result.err)
		return nil
	}
	events.Action.Success("copied last read message")
	m.setInfo("copied last read message")
	return nil
}

// snapshot writes the current canvas to a PNG file named after the pattern
// and the centered pick.
func (m *Model) snapshot() tea.Cmd {
	img := m.canvas.Image()
	if img.Bounds().Empty() {
		m.setInfo("nothing to snapshot")
		return nil
	}
	path := filepath.Join(m.snapshotDir, snapshotName(m))
	return func() tea.Msg {
		return snapshotResultMsg{path: path, err: writePNG(path, img)}
	}
}

func snapshotName(m *Model) string {
	p := m.client.Pattern
	if p == nil {
		return "loom.png"
	}
	base := strings.TrimSuffix(filepath.Base(p.Name), filepath.Ext(p.Name))
	if base == "" || base == "." {
		base = "pattern"
	}
	return fmt.Sprintf("%s-pick%d.png", base, p.CenterPick(m.client.Jump))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

func (m *Model) handleSnapshotResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(snapshotResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		logging.Error(result.err)
		m.errMsg = result.err.Error()
		return nil
	}
	events.UI.Snapshot(result.path)
	m.setInfo("saved " + result.path)
	return nil
}
