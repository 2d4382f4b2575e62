// Package live pushes document updates and transient notices to connected
// preview clients over websockets, and feeds incoming key events into the
// keyboard dispatcher. It is the controller's renderer surface.
package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/keymap"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

// Message is the envelope pushed to clients.
type Message struct {
	Type     string         `json:"type"`
	Document *models.Report `json:"document,omitempty"`
	Level    string         `json:"level,omitempty"`
	Text     string         `json:"text,omitempty"`
}

const (
	msgDocument = "document"
	msgNotice   = "notice"
	msgCleanup  = "cleanup_formatting"
)

type client struct {
	conn *websocket.Conn
	out  chan Message
	done chan struct{}
}

// Hub fans messages out to connected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	keys    *keymap.Dispatcher
	logger  *common.Logger
	lastDoc *models.Report
}

// NewHub creates a hub wired to the given keyboard dispatcher.
func NewHub(keys *keymap.Dispatcher, logger *common.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		keys:    keys,
		logger:  logger,
	}
}

// DocumentChanged broadcasts the new live document. Implements the
// controller's Renderer interface.
func (h *Hub) DocumentChanged(doc models.Report) {
	h.mu.Lock()
	h.lastDoc = &doc
	h.mu.Unlock()
	h.broadcast(Message{Type: msgDocument, Document: &doc})
}

// CleanupFormatting tells clients to strip ad hoc inline formatting from
// their editable regions. Implements the controller's Renderer interface.
func (h *Hub) CleanupFormatting() {
	h.broadcast(Message{Type: msgCleanup})
}

// Notify broadcasts a transient notice. Implements the controller's
// Notifier interface.
func (h *Hub) Notify(level, message string) {
	h.broadcast(Message{Type: msgNotice, Level: level, Text: message})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.out <- msg:
		default:
			// slow client: drop the message rather than block the editor
		}
	}
}

// ServeHTTP upgrades the connection and runs the client's read/write loops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("websocket upgrade failed")
		return
	}

	cl := &client{
		conn: conn,
		out:  make(chan Message, 32),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	// late joiners immediately get the current document
	if h.lastDoc != nil {
		cl.out <- Message{Type: msgDocument, Document: h.lastDoc}
	}
	h.mu.Unlock()

	go h.writeLoop(cl)
	h.readLoop(cl)

	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()
	close(cl.done)
	conn.Close()
}

func (h *Hub) writeLoop(cl *client) {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg := <-cl.out:
			if err := cl.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ping.C:
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cl.done:
			return
		}
	}
}

// readLoop consumes key events from the client and feeds them into the
// dispatcher. Any other payload is ignored.
func (h *Hub) readLoop(cl *client) {
	for {
		mt, raw, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var ev struct {
			Type string       `json:"type"`
			Key  keymap.Event `json:"key"`
		}
		if err := json.Unmarshal(raw, &ev); err != nil || ev.Type != "key" {
			continue
		}
		h.keys.Dispatch(ev.Key)
	}
}
