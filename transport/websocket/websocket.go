// Package websocket implements wampclient.Transport over a WebSocket
// connection: one goroutine owns the read side, another owns the
// write side and the ping ticker, and a pluggable serialize.Codec
// picks the wire format.
package websocket

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	wampclient "github.com/wamp-go/client"
	"github.com/wamp-go/client/serialize"
)

const (
	jsonSubprotocol    = "wamp.2.json"
	msgpackSubprotocol = "wamp.2.msgpack"
)

// Options configures a Transport before Open dials it.
type Options struct {
	// URL is the ws:// or wss:// endpoint to dial.
	URL string
	// Codec selects the wire format; defaults to JSON if nil.
	Codec serialize.Codec
	// TLSConfig is used for wss:// dials; nil uses Go's default.
	TLSConfig *tls.Config
	// IdleTimeout bounds how long the connection may go without a
	// readable frame before the read deadline expires and the
	// transport disconnects. Zero disables the deadline.
	IdleTimeout time.Duration
	// PingInterval sends a WebSocket ping at this cadence to keep
	// intermediaries from reaping an idle connection. Zero disables
	// pinging.
	PingInterval time.Duration
	// WriteTimeout bounds each outbound message frame write. Zero means
	// no deadline for messages; pings then use a ten-second deadline.
	WriteTimeout time.Duration
}

func (o Options) subprotocolAndFrame() (string, int) {
	if _, ok := o.Codec.(serialize.MsgpackCodec); ok {
		return msgpackSubprotocol, websocket.BinaryMessage
	}
	return jsonSubprotocol, websocket.TextMessage
}

// Transport is a wampclient.Transport backed by a gorilla/websocket
// connection.
type Transport struct {
	opts      Options
	conn      *websocket.Conn
	frameType int

	outgoing chan wampclient.Message
	incoming chan wampclient.Message

	closing       chan struct{}
	closeOnce     sync.Once
	connCloseOnce sync.Once
	disconnect    chan error
	sendDone      chan struct{}

	isOpen int32
}

// New constructs a Transport that dials opts.URL when Open is called.
func New(opts Options) *Transport {
	if opts.Codec == nil {
		opts.Codec = serialize.JSONCodec{}
	}
	return &Transport{
		opts:       opts,
		outgoing:   make(chan wampclient.Message, 16),
		incoming:   make(chan wampclient.Message, 100),
		closing:    make(chan struct{}),
		disconnect: make(chan error, 1),
	}
}

func (t *Transport) Open(ctx context.Context) error {
	subprotocol, frameType := t.opts.subprotocolAndFrame()
	t.frameType = frameType

	dialer := websocket.Dialer{
		Subprotocols:    []string{subprotocol},
		TLSClientConfig: t.opts.TLSConfig,
	}
	conn, _, err := dialer.DialContext(ctx, t.opts.URL, nil)
	if err != nil {
		return fmt.Errorf("websocket: dial: %w", err)
	}
	t.conn = conn
	atomic.StoreInt32(&t.isOpen, 1)

	go t.sending()
	go t.run()
	return nil
}

func (t *Transport) IsOpen() bool {
	return atomic.LoadInt32(&t.isOpen) == 1
}

func (t *Transport) Send(msg wampclient.Message) error {
	select {
	case t.outgoing <- msg:
		return nil
	case <-time.After(5 * time.Second):
		t.fail(fmt.Errorf("websocket: send timeout"))
		return fmt.Errorf("websocket: send timeout")
	case <-t.closing:
		return wampclient.ErrTransportClosed
	}
}

func (t *Transport) Receive() <-chan wampclient.Message {
	return t.incoming
}

func (t *Transport) OnDisconnect() <-chan error {
	return t.disconnect
}

// Close is safe to call more than once (teardown and an explicit
// caller Close can both race to close the same transport); only the
// first call writes the close frame and closes the connection.
func (t *Transport) Close() error {
	t.doClosing(nil)
	if t.sendDone != nil {
		<-t.sendDone
	}
	var err error
	t.connCloseOnce.Do(func() {
		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "goodbye")
		t.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(5*time.Second))
		err = t.conn.Close()
	})
	return err
}

func (t *Transport) fail(cause error) {
	t.doClosing(cause)
}

func (t *Transport) doClosing(cause error) {
	t.closeOnce.Do(func() {
		atomic.StoreInt32(&t.isOpen, 0)
		close(t.closing)
		select {
		case t.disconnect <- cause:
		default:
		}
	})
}

func (t *Transport) isClosing() bool {
	select {
	case <-t.closing:
		return true
	default:
		return false
	}
}

func (t *Transport) updateReadDeadline() {
	if t.opts.IdleTimeout > 0 {
		t.conn.SetReadDeadline(time.Now().Add(t.opts.IdleTimeout))
	}
}

// run is the sole reader of the connection: it decodes frames and
// pushes Messages until the connection fails or is closed.
func (t *Transport) run() {
	defer close(t.incoming)

	if t.opts.IdleTimeout > 0 {
		t.conn.SetReadDeadline(time.Now().Add(t.opts.IdleTimeout))
	}
	t.conn.SetPongHandler(func(string) error {
		t.updateReadDeadline()
		return nil
	})

	for {
		t.updateReadDeadline()
		_, b, err := t.conn.ReadMessage()
		if err != nil {
			if !t.isClosing() {
				t.fail(fmt.Errorf("websocket: read: %w", err))
			}
			return
		}
		msg, err := t.opts.Codec.Unmarshal(b)
		if err != nil {
			t.fail(fmt.Errorf("websocket: decode: %w", err))
			return
		}
		t.incoming <- msg
	}
}

// sending is the sole writer of the connection, serializing outbound
// Messages and periodic pings onto one goroutine so writes never
// interleave.
func (t *Transport) sending() {
	t.sendDone = make(chan struct{})
	defer close(t.sendDone)

	var tick <-chan time.Time
	if t.opts.PingInterval > 0 {
		ticker := time.NewTicker(t.opts.PingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case msg := <-t.outgoing:
			if err := t.writeOne(msg); err != nil {
				t.fail(fmt.Errorf("websocket: write: %w", err))
				return
			}
		case <-tick:
			wt := t.opts.WriteTimeout
			if wt == 0 {
				wt = 10 * time.Second
			}
			if err := t.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wt)); err != nil {
				t.fail(fmt.Errorf("websocket: ping: %w", err))
				return
			}
		case <-t.closing:
			t.drainOutgoing()
			return
		}
	}
}

func (t *Transport) drainOutgoing() {
	for {
		select {
		case msg := <-t.outgoing:
			t.writeOne(msg)
		default:
			return
		}
	}
}

func (t *Transport) writeOne(msg wampclient.Message) error {
	b, err := t.opts.Codec.Marshal(msg)
	if err != nil {
		return err
	}
	if t.opts.WriteTimeout > 0 {
		t.conn.SetWriteDeadline(time.Now().Add(t.opts.WriteTimeout))
	}
	return t.conn.WriteMessage(t.frameType, b)
}
