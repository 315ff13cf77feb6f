// Package local provides an in-process duplex Transport, for tests and
// for embedding a client directly against an in-process router without
// going over a socket.
package local

import (
	"context"
	"sync"

	wampclient "github.com/wamp-go/client"
)

// NewPair returns two Transports wired back to back: messages sent on
// one arrive on the other's Receive channel. Closing either side
// closes that side's own Receive channel immediately and the peer's
// once it drains whatever was already in flight.
func NewPair() (wampclient.Transport, wampclient.Transport) {
	aToB := make(chan wampclient.Message, 16)
	bToA := make(chan wampclient.Message, 16)

	a := newDuplex(aToB, bToA)
	b := newDuplex(bToA, aToB)
	return a, b
}

type duplex struct {
	outgoing chan<- wampclient.Message
	incoming <-chan wampclient.Message

	// public is what Receive returns. A relay goroutine copies incoming
	// onto it and closes it as soon as either incoming is exhausted (the
	// peer closed) or done fires (this side closed), so a self-initiated
	// Close always unblocks this side's own Receive loop even though
	// incoming itself can only be closed by the peer.
	public chan wampclient.Message
	done   chan struct{}

	mu         sync.Mutex
	open       bool
	closed     bool
	disconnect chan error
}

func newDuplex(outgoing chan<- wampclient.Message, incoming <-chan wampclient.Message) *duplex {
	d := &duplex{
		outgoing:   outgoing,
		incoming:   incoming,
		public:     make(chan wampclient.Message, 16),
		done:       make(chan struct{}),
		disconnect: make(chan error, 1),
	}
	go d.relay()
	return d
}

func (d *duplex) relay() {
	defer close(d.public)
	for {
		select {
		case msg, ok := <-d.incoming:
			if !ok {
				d.mu.Lock()
				d.open = false
				d.mu.Unlock()
				return
			}
			d.public <- msg
		case <-d.done:
			return
		}
	}
}

func (d *duplex) Open(ctx context.Context) error {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
	return nil
}

func (d *duplex) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open && !d.closed
}

func (d *duplex) Send(msg wampclient.Message) error {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return wampclient.ErrTransportClosed
	}
	d.outgoing <- msg
	return nil
}

func (d *duplex) Receive() <-chan wampclient.Message {
	return d.public
}

func (d *duplex) OnDisconnect() <-chan error {
	return d.disconnect
}

func (d *duplex) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.open = false
	d.mu.Unlock()

	close(d.outgoing)
	close(d.done)
	select {
	case d.disconnect <- nil:
	default:
	}
	return nil
}
