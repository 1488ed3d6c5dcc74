// Package transport is the websocket link to the loom server.
//
// A read pump turns inbound frames into Events on a channel; Send writes
// commands one at a time. Once the socket closes the client is done: there
// is no reconnect.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/r-owen/toika-loom-client/internal/logging"
	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/protocol"
)

const (
	eventBuffer  = 64
	closeTimeout = time.Second
)

var ErrClosed = errors.New("connection to loom server is closed")

// Event is one inbound frame, or the final close notice.
type Event struct {
	Data   []byte
	Closed bool
	Reason string
}

type Client struct {
	url    string
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
	stop   sync.Once

	mu     sync.Mutex
	closed bool
}

// Dial connects to the loom server and starts the read pump.
func Dial(ctx context.Context, rawURL string) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.Redacted(), err)
	}
	events.Socket.Open(u.Redacted())
	c := &Client{
		url:    u.String(),
		conn:   conn,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go c.readPump()
	return c, nil
}

// URL is the server address the client dialed.
func (c *Client) URL() string {
	return c.url
}

// Events delivers inbound frames in arrival order. The last event has
// Closed set, after which the channel is closed. After Close, frames the
// reader has not taken may be dropped.
func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) readPump() {
	defer close(c.events)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			reason := closeReason(err)
			c.markClosed()
			events.Socket.Closed(reason)
			c.deliver(Event{Closed: true, Reason: reason})
			return
		}
		if !c.deliver(Event{Data: data}) {
			return
		}
	}
}

// deliver hands evt to the reader, giving up once Close has been called.
func (c *Client) deliver(evt Event) bool {
	select {
	case c.events <- evt:
		return true
	case <-c.done:
		return false
	}
}

// Send encodes cmd and writes it as one text frame. It returns after the
// frame has been handed to the socket.
func (c *Client) Send(ctx context.Context, cmd protocol.Command) error {
	data, err := protocol.Encode(cmd)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer c.conn.SetWriteDeadline(time.Time{})
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send %s: %w", cmd.CommandType(), err)
	}
	events.Socket.Send(cmd.CommandType(), len(data))
	return nil
}

// Close sends a close frame and shuts the socket. The read pump then emits
// its final event.
func (c *Client) Close() error {
	c.stop.Do(func() { close(c.done) })
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeTimeout)); err != nil {
		logging.Error(fmt.Errorf("close handshake: %w", err))
	}
	return c.conn.Close()
}

func (c *Client) markClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		_ = c.conn.Close()
	}
}

func closeReason(err error) string {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		if ce.Text != "" {
			return ce.Text
		}
		return fmt.Sprintf("code %d", ce.Code)
	}
	return err.Error()
}
