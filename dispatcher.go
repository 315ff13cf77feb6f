package wampclient

// runDispatcher is the single logical consumer of the transport's
// inbound sequence for the lifetime of Established. It takes over
// from the handshake the moment WELCOME is seen.
func (s *Session) runDispatcher() {
	for msg := range s.transport.Receive() {
		s.dispatch(msg)
	}

	var cause error
	select {
	case cause = <-s.transport.OnDisconnect():
	default:
	}
	s.teardown(cause)
}

// dispatch classifies one inbound message and routes it to (a) the
// waiter for its request id, (b) the event/invocation fan-out for its
// subscription/registration id, or (c) session control. Per-message
// work here is kept to map lookups and a non-blocking queue push, so
// one slow sink can never delay delivery to another.
func (s *Session) dispatch(msg Message) {
	switch m := msg.(type) {

	case *Published:
		s.mu.Lock()
		s.resolveAck(s.reg.pendingPublish, m.Request, m, nil)
		s.mu.Unlock()

	case *Subscribed:
		s.mu.Lock()
		s.resolveAck(s.reg.pendingSubscribe, m.Request, m, nil)
		s.mu.Unlock()

	case *Unsubscribed:
		s.mu.Lock()
		s.resolveAck(s.reg.pendingUnsubscribe, m.Request, m, nil)
		s.mu.Unlock()

	case *Registered:
		s.mu.Lock()
		s.resolveAck(s.reg.pendingRegister, m.Request, m, nil)
		s.mu.Unlock()

	case *Unregistered:
		s.mu.Lock()
		s.resolveAck(s.reg.pendingUnregister, m.Request, m, nil)
		s.mu.Unlock()

	case *Result:
		s.mu.Lock()
		found := s.deliverCallResult(m.Request, m)
		s.mu.Unlock()
		if !found {
			s.log.Debug().Uint64("request", uint64(m.Request)).Msg("RESULT for unknown call")
		}

	case *Error:
		s.dispatchError(m)

	case *Event:
		s.mu.Lock()
		sub, ok := s.reg.subscriptions[m.Subscription]
		s.mu.Unlock()
		if ok {
			sub.queue.push(m)
		} else {
			s.log.Debug().Uint64("subscription", uint64(m.Subscription)).Msg("EVENT for unknown subscription, dropped")
		}

	case *Invocation:
		s.mu.Lock()
		reg, ok := s.reg.registrations[m.Registration]
		s.mu.Unlock()
		if ok {
			reg.queue.push(&InvocationRequest{
				Request:      m.Request,
				Registration: m.Registration,
				Details:      m.Details,
				Arguments:    m.Arguments,
				ArgumentsKw:  m.ArgumentsKw,
				session:      s,
			})
		} else {
			s.send(&Error{
				RequestType: INVOCATION,
				Request:     m.Request,
				Details:     map[string]interface{}{},
				Error:       ErrNoSuchRegistration,
			})
		}

	case *Goodbye:
		s.log.Debug().Str("reason", string(m.Reason)).Msg("GOODBYE from router")
		s.mu.Lock()
		replying := s.state != StateClosing
		s.mu.Unlock()
		if replying {
			s.send(&Goodbye{Details: map[string]interface{}{}, Reason: ErrGoodbyeAndOut})
		}
		s.teardown(nil)

	case *Abort:
		s.teardown(&ProtocolError{Want: GOODBYE, Got: m})

	default:
		s.log.Debug().Stringer("type", msg.MessageType()).Msg("unhandled message")
	}
}

// dispatchError resolves the pending waiter named by (RequestType,
// Request), matching at most one waiter.
func (s *Session) dispatchError(m *Error) {
	routerErr := &RouterError{
		RequestType: m.RequestType,
		URI:         m.Error,
		Arguments:   m.Arguments,
		ArgumentsKw: m.ArgumentsKw,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var found bool
	switch m.RequestType {
	case CALL:
		found = s.failCall(m.Request, routerErr)
	case PUBLISH:
		found = s.resolveAck(s.reg.pendingPublish, m.Request, nil, routerErr)
	case SUBSCRIBE:
		found = s.resolveAck(s.reg.pendingSubscribe, m.Request, nil, routerErr)
	case UNSUBSCRIBE:
		found = s.resolveAck(s.reg.pendingUnsubscribe, m.Request, nil, routerErr)
	case REGISTER:
		found = s.resolveAck(s.reg.pendingRegister, m.Request, nil, routerErr)
	case UNREGISTER:
		found = s.resolveAck(s.reg.pendingUnregister, m.Request, nil, routerErr)
	}
	if !found {
		s.log.Debug().Stringer("requestType", m.RequestType).Uint64("request", uint64(m.Request)).
			Msg("ERROR for unknown request")
	}
}
