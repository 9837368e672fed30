// ws.go — the live standings socket.
// GET /ws/leagues/:id upgrades to a websocket; the client then receives a
// standings payload every time an admin mutates that league. The socket is
// push-only: inbound frames are read (to detect disconnects) and discarded.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/trentd187/league-night/internal/websocket"
)

// WebsocketUpgrade gates the route: plain HTTP requests get 426, websocket
// handshakes continue to the connection handler.
func WebsocketUpgrade(c *fiber.Ctx) error {
	if fiberws.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WatchLeague returns the websocket connection handler for /ws/leagues/:id.
// One goroutine per connection drains the hub's Send channel onto the wire;
// the handler itself blocks reading so it notices the client going away.
func WatchLeague(hub *websocket.Hub) fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		leagueID, err := uuid.Parse(conn.Params("id"))
		if err != nil {
			conn.Close()
			return
		}

		client := &websocket.Client{
			LeagueID: leagueID.String(),
			Send:     make(chan []byte, 16),
		}
		hub.Register(client)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for data := range client.Send {
				if err := conn.WriteMessage(fiberws.TextMessage, data); err != nil {
					return
				}
			}
		}()

		// Block on reads until the peer disconnects; inbound data is ignored.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		// Unregister closes Send, which ends the writer goroutine.
		hub.Unregister(client)
		<-done
		conn.Close()
	})
}
