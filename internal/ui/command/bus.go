package command

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/protocol"
	"github.com/r-owen/toika-loom-client/internal/upload"
)

// Request encapsulates one outgoing command.
type Request struct {
	Command protocol.Command
	Label   string
}

// SentMsg reports the outcome of a single command.
type SentMsg struct {
	Kind  string
	Label string
	Echo  string
	Err   error
}

// UploadMsg reports the outcome of an upload batch. LastSent echoes the last
// command written before the batch ended.
type UploadMsg struct {
	Selected string
	LastSent string
	Err      error
}

// Bus hands commands to the socket off the Update goroutine. Requests are
// queued in the order Execute and Upload are called and written by a single
// worker, so the server sees them in that order whichever goroutine runs the
// returned tea.Cmd.
type Bus struct {
	ctx    context.Context
	sender upload.Sender

	mu    sync.Mutex
	queue []*job
	wake  chan struct{}
	start sync.Once
}

type job struct {
	run  func() tea.Msg
	done chan tea.Msg
}

// New initialises a command bus writing to sender. A nil sender turns every
// request into a no-op. The worker stops when ctx is cancelled.
func New(ctx context.Context, sender upload.Sender) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, sender: sender, wake: make(chan struct{}, 1)}
}

// Execute queues a send and returns a command that waits for its result.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.Command == nil {
		events.Command.NoOp(req.Label)
		return nil
	}
	kind := req.Command.CommandType()
	echo := protocol.Describe(req.Command)
	events.Command.Queue(kind, echo)
	if b.sender == nil {
		events.Command.NoOp(req.Label)
		return nil
	}
	return b.enqueue(func() tea.Msg {
		err := b.sender.Send(b.ctx, req.Command)
		msg := SentMsg{Kind: kind, Label: req.Label, Echo: echo, Err: err}
		events.Command.Result(kind, fmt.Sprintf("%T", msg))
		return msg
	})
}

// Upload queues an upload batch as one job; nothing else is written between
// its files.
func (b *Bus) Upload(paths []string, read upload.ReadFunc) tea.Cmd {
	if b.sender == nil {
		events.Command.NoOp("upload")
		return nil
	}
	events.Command.Queue("upload", fmt.Sprintf("%d file(s)", len(paths)))
	return b.enqueue(func() tea.Msg {
		rec := &recordingSender{next: b.sender}
		selected, err := upload.Run(b.ctx, rec, paths, read)
		msg := UploadMsg{Selected: selected, LastSent: rec.last(), Err: err}
		events.Command.Result("upload", fmt.Sprintf("%T", msg))
		return msg
	})
}

// enqueue appends run to the queue now, on the caller's goroutine, so the
// write order is fixed before any tea.Cmd is scheduled.
func (b *Bus) enqueue(run func() tea.Msg) tea.Cmd {
	j := &job{run: run, done: make(chan tea.Msg, 1)}
	b.start.Do(func() { go b.loop() })
	b.mu.Lock()
	b.queue = append(b.queue, j)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
	ctx := b.ctx
	return func() tea.Msg {
		select {
		case msg := <-j.done:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (b *Bus) loop() {
	for {
		j := b.next()
		if j == nil {
			select {
			case <-b.wake:
				continue
			case <-b.ctx.Done():
				return
			}
		}
		if b.ctx.Err() != nil {
			return
		}
		j.done <- j.run()
	}
}

func (b *Bus) next() *job {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil
	}
	j := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return j
}

type recordingSender struct {
	next upload.Sender

	mu   sync.Mutex
	echo string
}

func (r *recordingSender) Send(ctx context.Context, cmd protocol.Command) error {
	r.mu.Lock()
	r.echo = protocol.Describe(cmd)
	r.mu.Unlock()
	return r.next.Send(ctx, cmd)
}

func (r *recordingSender) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.echo
}
