package websocket

import (
	"encoding/json"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/broadcast"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// Tab is one attached UI surface (a browser tab holding a live socket).
// Tabs are pure listeners: they receive ChangeNotifications and render;
// mutations go through the regular HTTP surfaces.
type Tab struct {
	Hub  *Hub
	Conn *Conn
	Send chan []byte
}

// Hub fans ChangeNotifications out to every attached tab. It is the
// delivery edge of the broadcaster toward real UI surfaces; delivery is
// best-effort, a tab that cannot keep up is disconnected and re-reads on
// reattach.
type Hub struct {
	tabs       map[*Tab]bool
	register   chan *Tab
	unregister chan *Tab
	broadcast  chan []byte
}

// NewHub creates a hub.
func NewHub() *Hub {
	return &Hub{
		tabs:       make(map[*Tab]bool),
		register:   make(chan *Tab, 64),
		unregister: make(chan *Tab, 64),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run owns the tab set. Everything mutating it goes through the three
// channels, so no lock is needed.
func (h *Hub) Run() {
	for {
		select {
		case tab := <-h.register:
			h.tabs[tab] = true
			logger.Info("Tab attached", map[string]interface{}{
				"tabs": len(h.tabs),
			})

		case tab := <-h.unregister:
			if _, ok := h.tabs[tab]; ok {
				delete(h.tabs, tab)
				close(tab.Send)
			}
			logger.Info("Tab detached", map[string]interface{}{
				"tabs": len(h.tabs),
			})

		case message := <-h.broadcast:
			for tab := range h.tabs {
				select {
				case tab.Send <- message:
				default:
					// Send buffer full; drop the tab, it will re-read
					// current state when it reattaches.
					delete(h.tabs, tab)
					close(tab.Send)
					logger.Warn("Tab send buffer full, disconnecting", nil)
				}
			}
		}
	}
}

// BindTo subscribes the hub to both notification kinds so every change
// published in-process reaches the attached tabs. The returned disposers
// are kept for symmetry with other subscribers; the hub normally lives as
// long as the process.
func (h *Hub) BindTo(b *broadcast.Broadcaster) (unsubscribe func()) {
	offCart := b.Subscribe(model.CartChanged, h.push)
	offProfile := b.Subscribe(model.ProfileChanged, h.push)
	return func() {
		offCart()
		offProfile()
	}
}

func (h *Hub) push(notification model.ChangeNotification) {
	data, err := json.Marshal(notification)
	if err != nil {
		logger.Error("Failed to marshal notification for tabs", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// Notification loss toward tabs is acceptable: tabs re-read on
		// their next interaction.
		logger.Warn("Tab broadcast channel full, notification dropped", map[string]interface{}{
			"kind": notification.Kind,
		})
	}
}

// Register attaches a tab.
func (h *Hub) Register(tab *Tab) {
	h.register <- tab
}

// Unregister detaches a tab.
func (h *Hub) Unregister(tab *Tab) {
	h.unregister <- tab
}
