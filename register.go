package wampclient

import "context"

// Register sends REGISTER and, on REGISTERED, returns a live handle
// whose invocation stream yields every INVOCATION for its registration
// id, each carrying a response hook.
func (s *Session) Register(ctx context.Context, procedure string, options map[string]interface{}) (*Registration, error) {
	if err := s.requireEstablished(); err != nil {
		return nil, err
	}
	if options == nil {
		options = map[string]interface{}{}
	}

	id := s.ids.next(classRegister)
	s.mu.Lock()
	waiter := s.registerAck(s.reg.pendingRegister, id)
	s.mu.Unlock()

	reg := &Register{Request: id, Options: options, Procedure: URI(procedure)}
	if err := s.send(reg); err != nil {
		s.mu.Lock()
		delete(s.reg.pendingRegister, id)
		s.mu.Unlock()
		return nil, err
	}

	msg, err := s.awaitAck(ctx, s.reg.pendingRegister, id, waiter)
	if err != nil {
		return nil, err
	}
	registered := msg.(*Registered)

	registration := newRegistration(s, registered.Registration, URI(procedure))
	s.mu.Lock()
	s.reg.registrations[registered.Registration] = registration
	s.mu.Unlock()
	return registration, nil
}

// Unregister sends UNREGISTER and, on success, removes the
// registration record. Late-arriving INVOCATIONs for a removed
// registration id produce ERROR(INVOCATION, …, no_such_registration)
// to the router.
func (s *Session) Unregister(registrationID ID) error {
	return s.unregister(context.Background(), registrationID)
}

// UnregisterContext is Unregister with caller-supplied cancellation.
func (s *Session) UnregisterContext(ctx context.Context, registrationID ID) error {
	return s.unregister(ctx, registrationID)
}

func (s *Session) unregister(ctx context.Context, registrationID ID) error {
	if err := s.requireEstablished(); err != nil {
		return err
	}

	id := s.ids.next(classUnregister)
	s.mu.Lock()
	waiter := s.registerAck(s.reg.pendingUnregister, id)
	s.mu.Unlock()

	unreg := &Unregister{Request: id, Registration: registrationID}
	if err := s.send(unreg); err != nil {
		s.mu.Lock()
		delete(s.reg.pendingUnregister, id)
		s.mu.Unlock()
		return err
	}

	_, err := s.awaitAck(ctx, s.reg.pendingUnregister, id, waiter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	reg, ok := s.reg.registrations[registrationID]
	delete(s.reg.registrations, registrationID)
	s.mu.Unlock()
	if ok {
		reg.queue.closeQueue()
	}
	return nil
}
