package gateway

import (
	"sync"

	"github.com/ironkeel/galleon-server/internal/world"
)

// Client is an actor on the Gateway: a network connection plus whatever
// session bookkeeping it carries.
type Client interface {
	// Data returns the session state attached to this client. Only the
	// gateway's run loop goroutine mutates it.
	Data() *ClientData

	// Init starts the client's I/O goroutines. Called once by the
	// gateway goroutine right after registration.
	Init()

	// Send enqueues an outbound message. Never blocks the caller for
	// long: a slow client misses snapshots, or is disconnected, instead
	// of stalling the sender.
	Send(Outbound)

	// Close releases the client's transport resources. Always called
	// by the gateway goroutine.
	Close()

	// Destroy asks the gateway to unregister this client. Only the
	// client's own goroutines call this (on read/write error).
	Destroy()
}

// ClientData is the session state every Client carries, plus the
// doubly-linked-list pointers used by ClientList.
type ClientData struct {
	SessionID world.SessionID
	EntityID  world.EntityID // EntityIDInvalid until setPlayerName succeeds
	Name      string

	Gateway *Gateway

	Previous, Next Client

	// inputMu guards PendingInput, written by the client's read pump
	// goroutine and drained once per tick by the gateway goroutine.
	// Only the latest input is kept rather than queueing every message,
	// so a slow tick never backs up stale intents.
	inputMu      sync.Mutex
	PendingInput *world.Input
}

// SetPendingInput overwrites the session's coalesced input, safe to
// call concurrently with the gateway goroutine draining it.
func (d *ClientData) SetPendingInput(in world.Input) {
	d.inputMu.Lock()
	d.PendingInput = &in
	d.inputMu.Unlock()
}

// TakePendingInput returns and clears the coalesced input, or nil if
// none arrived since the last call.
func (d *ClientData) TakePendingInput() *world.Input {
	d.inputMu.Lock()
	in := d.PendingInput
	d.PendingInput = nil
	d.inputMu.Unlock()
	return in
}

// ClientList is a doubly-linked list of Clients: cheap O(1) add/remove
// during iteration, which the gateway needs every tick to drop
// disconnected sessions.
type ClientList struct {
	First, Last Client
	Len         int
}

// Add appends client to the list.
func (l *ClientList) Add(client Client) {
	data := client.Data()
	if data.Previous != nil || data.Next != nil {
		panic("gateway: client already added")
	}
	if l.First == nil {
		l.First = client
	} else {
		l.Last.Data().Next = client
		data.Previous = l.Last
	}
	l.Last = client
	l.Len++
}

// Remove unlinks client from the list and returns the next element.
func (l *ClientList) Remove(client Client) (next Client) {
	data := client.Data()
	if data.Previous != nil {
		data.Previous.Data().Next = data.Next
	} else if l.First == client {
		l.First = data.Next
	}
	if data.Next != nil {
		data.Next.Data().Previous = data.Previous
	} else if l.Last == client {
		l.Last = data.Previous
	}
	l.Len--
	next = data.Next
	data.Next = nil
	data.Previous = nil
	return
}
