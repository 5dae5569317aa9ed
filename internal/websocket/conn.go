package websocket

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Tabs only listen, so
	// anything beyond a ping frame is noise.
	maxMessageSize = 4 * 1024
)

// Conn wraps the underlying websocket connection.
type Conn struct {
	*websocket.Conn
}

// ReadPump drains the connection until it closes. Incoming payloads are
// discarded; the socket exists for pushing, reads only service the
// keepalive handshake and close detection.
func (t *Tab) ReadPump() {
	defer func() {
		t.Hub.Unregister(t)
		t.Conn.Close()
	}()

	t.Conn.SetReadLimit(maxMessageSize)
	t.Conn.SetReadDeadline(time.Now().Add(pongWait))
	t.Conn.SetPongHandler(func(string) error {
		t.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := t.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("Tab socket read error", err, nil)
			}
			break
		}
	}
}

// WritePump pushes queued notifications and keepalive pings to the tab.
func (t *Tab) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		t.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-t.Send:
			t.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				t.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := t.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Failed to push notification to tab", err, nil)
				return
			}

			// Flush any queued notifications as individual frames
			n := len(t.Send)
			for i := 0; i < n; i++ {
				msg := <-t.Send
				if err := t.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.Error("Failed to push queued notification to tab", err, nil)
					return
				}
			}

		case <-ticker.C:
			t.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
