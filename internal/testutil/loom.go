package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// LoomServer is a fake loom server speaking the client protocol over a
// websocket. It records every frame the client sends and lets tests push
// replies.
type LoomServer struct {
	t        *testing.T
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	conn     *websocket.Conn
	once     sync.Once
	ready    chan struct{}
	received chan map[string]interface{}
}

// StartLoomServer starts a fake server; it is shut down with the test.
func StartLoomServer(t *testing.T) *LoomServer {
	t.Helper()
	s := &LoomServer{
		t:        t,
		ready:    make(chan struct{}),
		received: make(chan map[string]interface{}, 64),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

// URL is the websocket address of the server.
func (s *LoomServer) URL() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
}

func (s *LoomServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.t.Errorf("upgrade failed: %v", err)
		return
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.once.Do(func() { close(s.ready) })
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd map[string]interface{}
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.t.Errorf("client sent invalid json %q: %v", data, err)
			continue
		}
		s.received <- cmd
	}
}

func (s *LoomServer) waitConn() *websocket.Conn {
	s.t.Helper()
	select {
	case <-s.ready:
	case <-time.After(2 * time.Second):
		s.t.Fatalf("timeout waiting for client connection")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

// Push sends msg to the client as one JSON text frame.
func (s *LoomServer) Push(msg interface{}) {
	s.t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		s.t.Fatalf("marshal push: %v", err)
	}
	s.PushRaw(data)
}

// PushRaw sends data verbatim.
func (s *LoomServer) PushRaw(data []byte) {
	s.t.Helper()
	conn := s.waitConn()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.t.Fatalf("push failed: %v", err)
	}
}

// Next returns the next command the client sent.
func (s *LoomServer) Next() map[string]interface{} {
	s.t.Helper()
	select {
	case cmd := <-s.received:
		return cmd
	case <-time.After(2 * time.Second):
		s.t.Fatalf("timeout waiting for client command")
	}
	return nil
}

// CloseWith closes the connection with a normal close frame carrying reason.
func (s *LoomServer) CloseWith(reason string) {
	s.t.Helper()
	conn := s.waitConn()
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}
