package gateway

import (
	"log"
	"net/http"

	"github.com/ironkeel/galleon-server/internal/world"
)

// ServeSocket upgrades an HTTP request to a websocket and registers the
// resulting connection with the gateway. Connection-count throttling
// belongs to the listener (cmd/galleon-server wraps it with
// netutil.LimitListener), not this handler.
func (gw *Gateway) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("gateway: upgrade error:", err)
		return
	}
	id, err := world.NewSessionID()
	if err != nil {
		log.Println("gateway: session id error:", err)
		_ = conn.Close()
		return
	}
	client := NewSocketClient(conn)
	client.data.SessionID = id
	gw.Register(client)
}
