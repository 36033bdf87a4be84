// Package live subscribes to the backend's change-notification feed so
// list views can refetch when another user edits the data.
package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// Event is the payload the backend broadcasts on every resource change.
type Event struct {
	Type   string `json:"type"`
	ID     any    `json:"id"`
	Action string `json:"action"`
}

// Subscriber holds one change-feed connection.
type Subscriber struct {
	conn *ws.Conn

	mu   sync.Mutex
	done chan struct{}
}

// Subscribe dials the change feed and invokes onEvent for every message
// until the context is cancelled or the connection drops. Malformed
// messages are logged and skipped.
func Subscribe(ctx context.Context, wsURL, token string, onEvent func(Event)) (*Subscriber, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := ws.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, err
	}

	s := &Subscriber{conn: conn, done: make(chan struct{})}

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		s.mu.Lock()
		defer s.mu.Unlock()
		return conn.WriteControl(ws.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	go func() {
		defer close(s.done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var evt Event
			if err := json.Unmarshal(data, &evt); err != nil {
				log.Printf("live: skipping malformed event: %v", err)
				continue
			}
			onEvent(evt)
		}
	}()

	return s, nil
}

// Done is closed when the read loop exits.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// Close shuts the connection down; pending events are dropped.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.WriteControl(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = s.conn.Close()
}
