package wampclient

import (
	"context"
	"sync"
)

// CallEvent is one item from a CallHandle's stream: either a RESULT
// (progressive or terminal) or the terminal error.
type CallEvent struct {
	Result *Result
	Err    error
}

// CallHandle is the lazy sequence of results returned by Call. It
// yields every RESULT whose request id matches, terminating the
// stream on the non-progressive RESULT or on a matching ERROR. The
// stream is not closed client-side by an abandoned consumer or by
// Cancel; only a terminal router response, or session teardown, ends
// it.
type CallHandle struct {
	id      ID
	session *Session
	events  chan CallEvent

	cancelOnce sync.Once
}

// ID is this call's request id.
func (c *CallHandle) ID() ID { return c.id }

// Events yields this call's RESULTs/terminal error in transport-receive
// order.
func (c *CallHandle) Events() <-chan CallEvent { return c.events }

// Cancel requests the router cancel this in-flight call. mode must be
// one of "kill", "killnowait", "skip" to be carried in CANCEL.Options;
// any other value is sent with empty options. The stream stays open
// until the router answers with a terminal RESULT or ERROR — Cancel
// only asks, it does not itself close the stream.
func (c *CallHandle) Cancel(mode string) error {
	var err error
	c.cancelOnce.Do(func() {
		options := map[string]interface{}{}
		switch mode {
		case "kill", "killnowait", "skip":
			options["mode"] = mode
		}
		err = c.session.send(&Cancel{Request: c.id, Options: options})
	})
	return err
}

// Call allocates a call id, sends CALL, and returns a stream of
// results. Passing a ctx that gets canceled before a terminal response
// arrives abandons the call: the session emits CANCEL(mode=skip) once
// on abandonment to let the router release its side promptly, but
// still leaves the stream open for whatever terminal response
// follows.
func (s *Session) Call(ctx context.Context, procedure string, args []interface{}, kwargs map[string]interface{}, options map[string]interface{}) (*CallHandle, error) {
	if err := s.requireEstablished(); err != nil {
		return nil, err
	}
	if options == nil {
		options = map[string]interface{}{}
	}

	id := s.ids.next(classCall)
	s.mu.Lock()
	cs := s.registerCall(id)
	s.mu.Unlock()

	events := make(chan CallEvent)
	go cs.queue.forward(events)

	handle := &CallHandle{id: id, session: s, events: events}

	call := &Call{
		Request:     id,
		Options:     options,
		Procedure:   URI(procedure),
		Arguments:   args,
		ArgumentsKw: kwargs,
	}
	if err := s.send(call); err != nil {
		s.mu.Lock()
		s.failCall(id, err)
		s.mu.Unlock()
		return nil, err
	}

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				handle.Cancel("skip")
			case <-cs.done:
			}
		}()
	}

	return handle, nil
}
