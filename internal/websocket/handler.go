package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handle returns an HTTP handler that upgrades the connection and runs it
// as a hub client until it disconnects.
func Handle(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // dashboard clients connect from LAN origins
		})
		if err != nil {
			hub.logger.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn)
		client.Run(r.Context())
	}
}
