package wampclient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Role is a bitmask of the WAMP client roles this session advertises
// in HELLO. A session can be any combination of the four.
type Role int

const (
	RolePublisher Role = 1 << iota
	RoleSubscriber
	RoleCallee
	RoleCaller

	RoleAll = RolePublisher | RoleSubscriber | RoleCallee | RoleCaller
)

func (r Role) details() map[string]interface{} {
	roles := make(map[string]interface{})
	if r&RolePublisher != 0 {
		roles["publisher"] = map[string]interface{}{}
	}
	if r&RoleSubscriber != 0 {
		roles["subscriber"] = map[string]interface{}{}
	}
	if r&RoleCallee != 0 {
		roles["callee"] = map[string]interface{}{
			"features": map[string]interface{}{"progressive_call_results": true},
		}
	}
	if r&RoleCaller != 0 {
		roles["caller"] = map[string]interface{}{
			"features": map[string]interface{}{
				"progressive_call_results": true,
				"call_canceling":           true,
			},
		}
	}
	return roles
}

// SessionState is one node of a Session's lifecycle: it only ever
// moves forward, from Connecting through an optional Challenging round
// trip to Established, then to Closing and finally Closed.
type SessionState int32

const (
	StateConnecting SessionState = iota
	StateChallenging
	StateEstablished
	StateClosing
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateChallenging:
		return "challenging"
	case StateEstablished:
		return "established"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ConnectOptions configures the HELLO handshake.
type ConnectOptions struct {
	// Realm is the realm to join; it must be a well-formed dot-separated
	// URI (see URI.Valid).
	Realm string
	// Roles advertised in HELLO.Details.roles. Defaults to RoleAll.
	Roles Role
	// AuthID is offered in HELLO.Details.authid, if non-empty.
	AuthID string
	// Authenticators are offered, in order, as HELLO.Details.authmethods.
	// The first one whose Name() matches the router's CHALLENGE wins.
	Authenticators []Authenticator
	// Details is merged into HELLO.Details before roles/authid/authmethods
	// are set, letting callers advertise additional client metadata.
	Details map[string]interface{}
}

// Session is one live WAMP session: the state machine, request
// registry, and dispatcher that multiplex every call, registration,
// subscription, and publication onto a single Transport.
type Session struct {
	transport Transport
	log       zerolog.Logger
	connID    string

	mu    sync.Mutex
	state SessionState
	reg   *registry
	ids   idAllocator

	id           ID
	realm        URI
	authID       string
	authRole     string
	authMethod   string
	authProvider string

	sendMu sync.Mutex

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error

	isOpen int32 // atomic bool, mirrors transport liveness for IsConnected
}

// SessionOption customizes a Session at construction time.
type SessionOption func(*Session)

// WithLogger overrides the default (silent-unless-WAMPCLIENT_DEBUG)
// logger.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession wraps an already-constructed Transport. The transport is
// not opened or used until Connect is called.
func NewSession(transport Transport, opts ...SessionOption) *Session {
	s := &Session{
		transport: transport,
		log:       defaultLogger(),
		connID:    uuid.NewString(),
		state:     StateConnecting,
		reg:       newRegistry(),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("conn_id", s.connID).Logger()
	return s
}

// ID is the server-assigned session id, valid once Connect returns
// successfully. It is set exactly once and never mutated afterward.
func (s *Session) ID() ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Realm is the realm this session joined.
func (s *Session) Realm() URI {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.realm
}

// AuthID, AuthRole, AuthMethod, AuthProvider report the server-assigned
// auth identity fields from WELCOME.Details, set exactly once.
func (s *Session) AuthID() string       { s.mu.Lock(); defer s.mu.Unlock(); return s.authID }
func (s *Session) AuthRole() string     { s.mu.Lock(); defer s.mu.Unlock(); return s.authRole }
func (s *Session) AuthMethod() string   { s.mu.Lock(); defer s.mu.Unlock(); return s.authMethod }
func (s *Session) AuthProvider() string { s.mu.Lock(); defer s.mu.Unlock(); return s.authProvider }

// State returns the session's current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsConnected reports whether the transport is open and the
// post-WELCOME dispatcher is still running.
func (s *Session) IsConnected() bool {
	return atomic.LoadInt32(&s.isOpen) == 1
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// send serializes outbound writes onto the transport: the transport
// is shared by the interaction surface, the handshake, and every
// invocation response hook, so a single mutex keeps their writes from
// interleaving.
func (s *Session) send(msg Message) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	s.log.Debug().Stringer("type", msg.MessageType()).Msg("send")
	return s.transport.Send(msg)
}

// recvHandshake waits for the next inbound message during the
// handshake window, honoring ctx and the transport's disconnect
// signal. Before WELCOME, the handshake is the sole consumer of the
// transport's inbound sequence; the dispatcher only takes over once
// Connect returns successfully.
func (s *Session) recvHandshake(ctx context.Context) (Message, error) {
	select {
	case msg, ok := <-s.transport.Receive():
		if !ok {
			select {
			case cause := <-s.transport.OnDisconnect():
				return nil, &ErrSessionClosed{Cause: cause}
			default:
				return nil, &ErrSessionClosed{}
			}
		}
		return msg, nil
	case cause := <-s.transport.OnDisconnect():
		return nil, &ErrSessionClosed{Cause: cause}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Connect performs the WAMP opening handshake: HELLO, then an
// optional CHALLENGE/AUTHENTICATE loop, ending in WELCOME or ABORT. On
// success the session is Established and the dispatcher takes over
// the transport's inbound sequence.
func (s *Session) Connect(ctx context.Context, opts ConnectOptions) error {
	if !URI(opts.Realm).Valid() {
		return fmt.Errorf("wampclient: invalid realm %q", opts.Realm)
	}

	if err := s.transport.Open(ctx); err != nil {
		return fmt.Errorf("wampclient: opening transport: %w", err)
	}

	roles := opts.Roles
	if roles == 0 {
		roles = RoleAll
	}
	details := map[string]interface{}{}
	for k, v := range opts.Details {
		details[k] = v
	}
	details["roles"] = roles.details()
	if opts.AuthID != "" {
		details["authid"] = opts.AuthID
	}
	if len(opts.Authenticators) > 0 {
		details["authmethods"] = authmethodNames(opts.Authenticators)
	}

	s.mu.Lock()
	s.realm = URI(opts.Realm)
	s.mu.Unlock()

	if err := s.send(&Hello{Realm: URI(opts.Realm), Details: details}); err != nil {
		s.transport.Close()
		return fmt.Errorf("wampclient: sending HELLO: %w", err)
	}

	for {
		msg, err := s.recvHandshake(ctx)
		if err != nil {
			s.transport.Close()
			return err
		}

		switch m := msg.(type) {
		case *Challenge:
			s.setState(StateChallenging)
			authr := findAuthenticator(m.AuthMethod, opts.Authenticators)
			if authr == nil {
				s.send(&Goodbye{Details: map[string]interface{}{}, Reason: ErrGoodbyeAndOut})
				s.transport.Close()
				return &AuthenticationError{Reason: ErrGoodbyeAndOut, Details: map[string]interface{}{
					"authmethod": m.AuthMethod,
				}}
			}
			signature, extra, err := authr.Challenge(ctx, m.Extra)
			if err != nil {
				s.transport.Close()
				return fmt.Errorf("wampclient: authenticator %q: %w", authr.Name(), err)
			}
			if err := s.send(&Authenticate{Signature: signature, Extra: extra}); err != nil {
				s.transport.Close()
				return fmt.Errorf("wampclient: sending AUTHENTICATE: %w", err)
			}
			// remain in Challenging; some methods need another round trip.

		case *Welcome:
			s.adoptWelcome(m)
			atomic.StoreInt32(&s.isOpen, 1)
			go s.runDispatcher()
			return nil

		case *Abort:
			s.transport.Close()
			return &AuthenticationError{Reason: m.Reason, Details: m.Details}

		default:
			s.send(&Abort{Details: map[string]interface{}{}, Reason: "wamp.error.unexpected_message_type"})
			s.transport.Close()
			return &ProtocolError{Want: WELCOME, Got: msg}
		}
	}
}

// adoptWelcome sets the session identity fields exactly once and
// transitions to Established.
func (s *Session) adoptWelcome(w *Welcome) {
	s.mu.Lock()
	s.id = w.ID
	if authid, ok := w.Details["authid"].(string); ok {
		s.authID = authid
	}
	if authrole, ok := w.Details["authrole"].(string); ok {
		s.authRole = authrole
	}
	if authmethod, ok := w.Details["authmethod"].(string); ok {
		s.authMethod = authmethod
	}
	if authprovider, ok := w.Details["authprovider"].(string); ok {
		s.authProvider = authprovider
	}
	s.state = StateEstablished
	s.mu.Unlock()
	s.log = s.log.With().Uint64("session_id", uint64(w.ID)).Logger()
	s.log.Info().Str("authrole", s.authRole).Msg("session established")
}

// requireEstablished is checked by every interaction-surface operation.
func (s *Session) requireEstablished() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateEstablished:
		return nil
	case StateClosing, StateClosed:
		return &ErrSessionClosed{Cause: s.closeErr}
	}
	return &ErrNotEstablished{State: s.state}
}

// Close leaves the session gracefully: it sends GOODBYE and waits for
// the router's reciprocal GOODBYE before closing the transport, giving
// up when ctx is done or after five seconds, whichever comes first.
// Use CloseNow to close without waiting for the reply.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed || s.state == StateClosing {
		s.mu.Unlock()
		<-s.closed
		return s.closeErr
	}
	s.state = StateClosing
	s.mu.Unlock()

	s.send(&Goodbye{Details: map[string]interface{}{}, Reason: ErrCloseRealm})

	select {
	case <-s.closed:
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
	return s.transport.Close()
}

// CloseNow sends GOODBYE and closes the transport immediately without
// waiting for the router's reply.
func (s *Session) CloseNow() error {
	s.mu.Lock()
	if s.state < StateClosing {
		s.state = StateClosing
	}
	s.mu.Unlock()
	s.send(&Goodbye{Details: map[string]interface{}{}, Reason: ErrCloseRealm})
	return s.transport.Close()
}

// teardown runs once, from the dispatcher, on GOODBYE, ABORT, or
// transport disconnect: it fails every outstanding waiter, closes
// every event/invocation sink, and closes the transport, so a
// router-initiated end of the session always releases the connection
// even if nobody ever calls Close.
func (s *Session) teardown(cause error) {
	s.closeOnce.Do(func() {
		atomic.StoreInt32(&s.isOpen, 0)
		s.mu.Lock()
		s.state = StateClosed
		s.closeErr = cause
		s.failAllPending(&ErrSessionClosed{Cause: cause})
		s.mu.Unlock()
		s.transport.Close()
		close(s.closed)
		s.log.Info().Err(cause).Msg("session closed")
	})
}
