package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rivercrossing/ferryman/solve/service"
)

const (
	// writeWait caps how long a single write to the peer may take.
	writeWait = 10 * time.Second

	// pongWait is how long we keep a connection that stops answering
	// pings.
	pongWait = 60 * time.Second

	// pingPeriod must stay below pongWait so the peer always has a
	// ping to answer before the read deadline hits.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize limits inbound frames; clients only send
	// keepalive traffic.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the UI is served from a fixed host
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the JSON envelope sent to subscribers. Outcome is set for
// finished solves, Event/Data for everything else.
type Message struct {
	SessionID string                `json:"session_id"`
	Outcome   *service.SolveOutcome `json:"outcome,omitempty"`
	Event     string                `json:"event,omitempty"`
	Data      interface{}           `json:"data,omitempty"`
}

// Client is one WebSocket subscriber, bound to a single session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans solve events out to the clients watching each session. All
// state is confined to the Run goroutine; other goroutines talk to it
// through the channels only.
type Hub struct {
	// sessions groups the live clients by session ID
	sessions map[string]map[*Client]bool

	// broadcast carries messages to fan out
	broadcast chan *Message

	// register and unregister carry client arrivals and departures
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub. Call Run on its own goroutine before serving.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS upgrades an HTTP request and subscribes the connection to
// sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastToSession sends a finished solve outcome to every client
// watching the session. Delivery runs through the hub loop so any
// goroutine may call this.
func (h *Hub) BroadcastToSession(sessionID string, outcome *service.SolveOutcome) {
	h.broadcast <- &Message{
		SessionID: sessionID,
		Outcome:   outcome,
		Event:     "outcome_update",
	}
}

// BroadcastEvent sends a named event with an arbitrary payload to every
// client watching the session.
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.broadcast <- &Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	}
}

// registerClient adds a client under its session, creating the group
// on first subscriber.
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Printf("WebSocket client joined session %s (%d watching)",
		client.sessionID, len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client and drops its session group once
// it is empty.
func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	log.Printf("WebSocket client left session %s (%d watching)",
		client.sessionID, len(clients))
}

// broadcastMessage marshals once and hands the bytes to every client
// in the target session. A client whose buffer is full is dropped
// rather than awaited.
func (h *Hub) broadcastMessage(message *Message) {
	clients, ok := h.sessions[message.SessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.unregisterClient(client)
		}
	}
}

// readPump drains the connection until it dies. Clients only watch
// solves, they never steer them, so inbound frames are discarded and
// merely reset the read deadline via the pong handler.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump writes queued messages and keepalive pings, one frame per
// message so every frame is a complete JSON document.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub dropped us
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
