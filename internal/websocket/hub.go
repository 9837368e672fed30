// Package websocket implements a hub for pushing live standings to viewers.
// Anyone with the leaderboard open holds a persistent connection; whenever an
// admin records a score, submits a round, or adjusts a result, the handlers
// broadcast the fresh standings to every client watching that league.
package websocket

import "sync"

// Client represents a single connected viewer.
type Client struct {
	LeagueID string      // Which league this client is watching
	Send     chan []byte // Buffered channel of outgoing messages; the websocket writer drains it
}

// Message is a unit of data to broadcast to all clients watching one league.
type Message struct {
	LeagueID string
	Data     []byte // Typically JSON-encoded standings
}

// Hub manages all active connections, grouped by league id. It runs in its
// own goroutine and processes registration, unregistration, and broadcast
// events through channels, keeping all map writes on a single goroutine.
type Hub struct {
	// clients: leagueID → set of connected clients.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu lets broadcasts snapshot the client set with a read lock while the
	// event loop holds the write side.
	mu sync.RWMutex
}

// NewHub creates an empty hub. The broadcast channel is buffered so score
// handlers never block on a briefly busy event loop; register/unregister stay
// unbuffered because connection lifecycle must apply synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop. It must be started in a goroutine and blocks
// forever.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.LeagueID] == nil {
				h.clients[client.LeagueID] = make(map[*Client]bool)
			}
			h.clients[client.LeagueID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients[msg.LeagueID] {
				select {
				case client.Send <- msg.Data:
				default:
					// Client too slow to drain its buffer; drop it rather
					// than stalling every other viewer.
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range slow {
				h.remove(client)
			}
		}
	}
}

// remove drops a client from the hub and closes its Send channel, signalling
// the writer goroutine to stop. Called only from the event loop goroutine.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.LeagueID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.LeagueID)
	}
}

// BroadcastToLeague sends data to every client watching the given league.
func (h *Hub) BroadcastToLeague(leagueID string, data []byte) {
	h.broadcast <- &Message{LeagueID: leagueID, Data: data}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
