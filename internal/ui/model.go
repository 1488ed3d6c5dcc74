package ui

import (
	"context"
	"os"
	"reflect"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/backend"
	"github.com/r-owen/toika-loom-client/internal/data/dispatcher"
	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/render"
	"github.com/r-owen/toika-loom-client/internal/state"
	"github.com/r-owen/toika-loom-client/internal/theme"
	"github.com/r-owen/toika-loom-client/internal/transport"
	"github.com/r-owen/toika-loom-client/internal/ui/command"
	uistate "github.com/r-owen/toika-loom-client/internal/ui/state"
	"github.com/r-owen/toika-loom-client/internal/upload"
)

type level = uistate.Level

// Focus names the area that receives key presses.
type Focus int

const (
	FocusPattern Focus = iota
	FocusMenu
	FocusJump
	FocusUpload
)

func (f Focus) String() string {
	switch f {
	case FocusMenu:
		return "menu"
	case FocusJump:
		return "jump"
	case FocusUpload:
		return "upload"
	default:
		return "pattern"
	}
}

const (
	defaultWidth         = 80
	defaultHeight        = 24
	defaultPixelsPerCell = 4
	minCanvasRows        = 3
	infoLifetime         = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model. Sender and Events are usually the same
// transport.Client; either may be nil in tests.
type Options struct {
	Context       context.Context
	Sender        upload.Sender
	Events        <-chan transport.Event
	Watcher       *backend.Watcher
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	PixelsPerCell int
	SnapshotDir   string
	InitialFiles  []string
	ReadFile      upload.ReadFunc
	Clipboard     func(string) error
}

// Model implements the Bubble Tea model for the loom display.
type Model struct {
	client     state.Client
	dispatcher *dispatcher.Dispatcher

	engine      *render.Engine
	canvas      *render.Canvas
	canvasLines []string
	scale       int

	events  <-chan transport.Event
	watcher *backend.Watcher
	bus     *command.Bus

	focus        Focus
	menu         *level
	filterCursor cursor.Model
	jumpPick     textinput.Model
	jumpRepeat   textinput.Model
	jumpField    int
	selectAll    bool
	uploadPrompt textinput.Model
	uploading    bool

	keys keyMap
	help help.Model

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	snapshotDir string

	initialFiles []string
	readFile     upload.ReadFunc
	copyText     func(string) error

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state from opts.
func NewModel(opts Options) *Model {
	scale := opts.PixelsPerCell
	if scale <= 0 {
		scale = defaultPixelsPerCell
	}
	m := &Model{
		client:       state.NewClient(),
		dispatcher:   dispatcher.New(),
		engine:       render.NewEngine(),
		canvas:       render.NewCanvas(0, 0),
		scale:        scale,
		events:       opts.Events,
		watcher:      opts.Watcher,
		bus:          command.New(opts.Context, opts.Sender),
		menu:         uistate.NewLevel("patterns", "Patterns", uistate.PatternItems(nil)),
		keys:         defaultKeyMap(),
		help:         help.New(),
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		snapshotDir:  opts.SnapshotDir,
		initialFiles: append([]string(nil), opts.InitialFiles...),
		readFile:     opts.ReadFile,
		copyText:     opts.Clipboard,
	}
	if m.readFile == nil {
		m.readFile = os.ReadFile
	}
	if m.copyText == nil {
		m.copyText = clipboard.WriteAll
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	c.SetMode(cursor.CursorStatic)
	m.filterCursor = c
	m.jumpPick = newNumberInput("pick")
	m.jumpRepeat = newNumberInput("repeat")
	m.uploadPrompt = newPathInput()
	m.registerHandlers()
	m.redraw()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.events != nil {
		cmds = append(cmds, waitForSocketEvent(m.events))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForBackendEvent(m.watcher))
	}
	if len(m.initialFiles) > 0 {
		files := m.initialFiles
		m.initialFiles = nil
		if cmd := m.startUpload(files); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(socketEventMsg{}):     m.handleSocketEventMsg,
		reflect.TypeOf(socketDoneMsg{}):      m.handleSocketDoneMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
		reflect.TypeOf(command.SentMsg{}):    m.handleSentMsg,
		reflect.TypeOf(command.UploadMsg{}):  m.handleUploadMsg,
		reflect.TypeOf(clipboardResultMsg{}): m.handleClipboardResultMsg,
		reflect.TypeOf(snapshotResultMsg{}):  m.handleSnapshotResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// Client exposes the reconciled server state.
func (m *Model) Client() state.Client {
	return m.client
}

// Focus reports which area currently receives keys.
func (m *Model) Focus() Focus {
	return m.focus
}

// Uploading reports whether an upload batch is in flight.
func (m *Model) Uploading() bool {
	return m.uploading
}

func (m *Model) setFocus(f Focus) {
	if m.focus == f {
		return
	}
	m.focus = f
	m.jumpPick.Blur()
	m.jumpRepeat.Blur()
	m.uploadPrompt.Blur()
	switch f {
	case FocusJump:
		m.focusJumpField(m.jumpField)
	case FocusUpload:
		m.uploadPrompt.Reset()
		m.uploadPrompt.Focus()
	case FocusMenu:
		m.menu.SetFilter("", 0)
		m.menu.SetCurrent(m.client.PatternName())
		if m.menu.IndexOf(m.menu.Current) < 0 {
			m.menu.MoveCursorHome()
		}
	}
	events.UI.Focus(f.String())
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
