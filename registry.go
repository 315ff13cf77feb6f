package wampclient

// ackResult is what a single-shot pending request resolves with: the
// success message, or an error built from a matching ERROR.
type ackResult struct {
	msg Message
	err error
}

// callState is the stream-style waiter a CALL registers. Unlike the
// other five request classes, a CALL may receive many RESULTs
// (progressive results) before the terminal one.
type callState struct {
	queue *unboundedQueue[CallEvent]
	// done closes when the stream has reached a terminal state
	// (non-progressive RESULT, ERROR, or session teardown), so a
	// caller watching for call abandonment can stop waiting.
	done chan struct{}
}

// registry holds the six per-class pending-request tables plus the
// live subscription/registration records. All of it is guarded by
// Session.mu; the dispatcher goroutine and every interaction-surface
// call touch it.
type registry struct {
	pendingPublish     map[ID]chan ackResult
	pendingSubscribe   map[ID]chan ackResult
	pendingUnsubscribe map[ID]chan ackResult
	pendingRegister    map[ID]chan ackResult
	pendingUnregister  map[ID]chan ackResult
	pendingCall        map[ID]*callState

	subscriptions map[ID]*Subscription
	registrations map[ID]*Registration
}

func newRegistry() *registry {
	return &registry{
		pendingPublish:     make(map[ID]chan ackResult),
		pendingSubscribe:   make(map[ID]chan ackResult),
		pendingUnsubscribe: make(map[ID]chan ackResult),
		pendingRegister:    make(map[ID]chan ackResult),
		pendingUnregister:  make(map[ID]chan ackResult),
		pendingCall:        make(map[ID]*callState),
		subscriptions:      make(map[ID]*Subscription),
		registrations:      make(map[ID]*Registration),
	}
}

// registerAck creates and stores a one-shot waiter for id in table.
// Caller must hold s.mu.
func (s *Session) registerAck(table map[ID]chan ackResult, id ID) chan ackResult {
	ch := make(chan ackResult, 1)
	table[id] = ch
	return ch
}

// resolveAck looks up and removes the waiter for id, delivering msg or
// err. Reports whether a waiter was found. Caller must hold s.mu.
func (s *Session) resolveAck(table map[ID]chan ackResult, id ID, msg Message, err error) bool {
	ch, ok := table[id]
	if !ok {
		return false
	}
	delete(table, id)
	ch <- ackResult{msg: msg, err: err}
	close(ch)
	return true
}

// registerCall creates the stream waiter for a new CALL. Caller must
// hold s.mu.
func (s *Session) registerCall(id ID) *callState {
	cs := &callState{queue: newUnboundedQueue[CallEvent](), done: make(chan struct{})}
	s.reg.pendingCall[id] = cs
	return cs
}

// deliverCallResult pushes one RESULT into its call's stream, closing
// the stream if it is the terminal (non-progressive) RESULT. Reports
// whether a waiter was found. Caller must hold s.mu.
func (s *Session) deliverCallResult(id ID, res *Result) bool {
	cs, ok := s.reg.pendingCall[id]
	if !ok {
		return false
	}
	cs.queue.push(CallEvent{Result: res})
	if !res.Progress() {
		delete(s.reg.pendingCall, id)
		cs.queue.closeQueue()
		close(cs.done)
	}
	return true
}

// failCall terminates a call's stream with err. Caller must hold s.mu.
func (s *Session) failCall(id ID, err error) bool {
	cs, ok := s.reg.pendingCall[id]
	if !ok {
		return false
	}
	delete(s.reg.pendingCall, id)
	cs.queue.push(CallEvent{Err: err})
	cs.queue.closeQueue()
	close(cs.done)
	return true
}

// failAllPending fails every outstanding waiter and closes every live
// subscription/registration stream with cause. Called once, on
// session teardown. Caller must hold s.mu.
func (s *Session) failAllPending(cause error) {
	for id, ch := range s.reg.pendingPublish {
		delete(s.reg.pendingPublish, id)
		ch <- ackResult{err: cause}
		close(ch)
	}
	for id, ch := range s.reg.pendingSubscribe {
		delete(s.reg.pendingSubscribe, id)
		ch <- ackResult{err: cause}
		close(ch)
	}
	for id, ch := range s.reg.pendingUnsubscribe {
		delete(s.reg.pendingUnsubscribe, id)
		ch <- ackResult{err: cause}
		close(ch)
	}
	for id, ch := range s.reg.pendingRegister {
		delete(s.reg.pendingRegister, id)
		ch <- ackResult{err: cause}
		close(ch)
	}
	for id, ch := range s.reg.pendingUnregister {
		delete(s.reg.pendingUnregister, id)
		ch <- ackResult{err: cause}
		close(ch)
	}
	for id, cs := range s.reg.pendingCall {
		delete(s.reg.pendingCall, id)
		cs.queue.push(CallEvent{Err: cause})
		cs.queue.closeQueue()
		close(cs.done)
	}
	for id, sub := range s.reg.subscriptions {
		delete(s.reg.subscriptions, id)
		sub.queue.closeQueue()
	}
	for id, reg := range s.reg.registrations {
		delete(s.reg.registrations, id)
		reg.queue.closeQueue()
	}
}
