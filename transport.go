package wampclient

import "context"

// Transport is the opaque byte-transport contract the session is built
// on. How frames become Messages — WebSocket, raw TCP, in-process — is
// not the session's concern; it only ever sees typed Messages.
type Transport interface {
	// Open blocks until the underlying channel is ready to send and
	// receive. It is called at most once per Transport.
	Open(ctx context.Context) error

	// IsOpen reports whether the transport is still usable. It flips
	// to false no later than the moment Receive's channel closes.
	IsOpen() bool

	// Send enqueues a message for delivery, preserving call order.
	// Send must be safe to call concurrently with itself and with
	// Receive/OnDisconnect.
	Send(msg Message) error

	// Receive returns the channel of inbound messages. The channel is
	// closed when the transport disconnects, whether cleanly or not;
	// the cause, if any, is available from OnDisconnect.
	Receive() <-chan Message

	// OnDisconnect returns a channel that receives (at most once) the
	// error that caused the transport to close, or nil for a clean
	// close. It is safe to call before or after disconnect.
	OnDisconnect() <-chan error

	// Close is idempotent; it releases the transport's resources and
	// causes Receive's channel to close if it has not already.
	Close() error
}
