package gateway

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ironkeel/galleon-server/internal/world"
)

// Transport timing: the pong/ping pair keeps a NAT'd connection from
// being reaped by an idle-connection timeout, and the read deadline
// turns a silently dead peer into a Destroy() within one pongWait
// window.
const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Upgrader is shared by every inbound connection. CheckOrigin is wide
// open here; a production deployment in front of this server is
// expected to enforce origin at the reverse proxy.
var Upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SocketClient is the production Client: a websocket connection plus the
// read/write pump goroutines that move bytes between it and the
// gateway.
type SocketClient struct {
	data ClientData
	conn *websocket.Conn
	send chan Outbound
	once sync.Once
}

// NewSocketClient wraps an already-upgraded websocket connection.
func NewSocketClient(conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		conn: conn,
		// Buffered enough to absorb one tick's worth of broadcasts plus
		// a couple of one-off replies before the slow-client cutoff in
		// Send kicks in.
		send: make(chan Outbound, 16),
	}
}

func (c *SocketClient) Data() *ClientData { return &c.data }

// Init starts the read/write pump goroutines. Called once by the
// gateway goroutine right after registration.
func (c *SocketClient) Init() {
	go c.writePump()
	go c.readPump()
}

// Send enqueues an outbound message without blocking. Snapshot
// broadcasts are best-effort per session: when the send buffer is full a
// GamestateUpdate is dropped (the next tick's snapshot supersedes it).
// Any other message meeting a full buffer marks the client unresponsive,
// and it gets disconnected instead of stalling the tick loop.
func (c *SocketClient) Send(out Outbound) {
	select {
	case c.send <- out:
	default:
		if _, ok := out.(GamestateUpdate); ok {
			return
		}
		c.Destroy()
	}
}

func (c *SocketClient) Close() {
	close(c.send)
}

// Destroy asks the gateway to unregister this client and closes the
// underlying connection. Safe to call from either pump goroutine or
// more than once; only the first call takes effect.
func (c *SocketClient) Destroy() {
	c.once.Do(func() {
		gw := c.data.Gateway
		if gw != nil {
			select {
			case gw.unregister <- c:
			default:
				go func() { gw.unregister <- c }()
			}
		}
		_ = c.conn.Close()
	})
}

func (c *SocketClient) readPump() {
	defer c.Destroy()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("gateway: close error:", err)
			}
			return
		}

		msg, err := decodeInbound(raw)
		if err != nil {
			log.Println("gateway: decode error:", err)
			return
		}

		gw := c.data.Gateway
		if in, ok := msg.(*InputMessage); ok {
			// Input bypasses the shared inbound queue entirely: only the
			// latest input matters, so it's coalesced straight into this
			// session's bounded pending slot rather than queued behind
			// one-off commands.
			c.data.SetPendingInput(inputFromMessage(*in))
			continue
		}
		gw.postInbound(&c.data, msg)
	}
}

func (c *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		c.Destroy()
	}()

	for {
		select {
		case out, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			payload, err := encodeOutbound(out)
			if err != nil {
				log.Println("gateway: encode error:", err)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-pingTicker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// inputFromMessage converts the wire InputMessage into the simulation's
// own Input type.
func inputFromMessage(in InputMessage) world.Input {
	return world.Input{
		Left:       in.Left,
		Right:      in.Right,
		SailUp:     in.SailUp,
		SailDown:   in.SailDown,
		ShootLeft:  in.ShootLeft,
		ShootRight: in.ShootRight,
	}
}
