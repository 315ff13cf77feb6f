package wampclient

import "context"

// Publish sends PUBLISH to topic. The call only waits for PUBLISHED
// when options["acknowledge"] == true; otherwise it returns
// immediately after the message is handed to the transport and no
// waiter is ever registered (WAMP-conformant fire-and-forget).
func (s *Session) Publish(ctx context.Context, topic string, args []interface{}, kwargs map[string]interface{}, options map[string]interface{}) (*Published, error) {
	if err := s.requireEstablished(); err != nil {
		return nil, err
	}
	if options == nil {
		options = map[string]interface{}{}
	}
	acknowledge, _ := options["acknowledge"].(bool)

	id := s.ids.next(classPublish)

	var waiter chan ackResult
	if acknowledge {
		s.mu.Lock()
		waiter = s.registerAck(s.reg.pendingPublish, id)
		s.mu.Unlock()
	}

	pub := &Publish{
		Request:     id,
		Options:     options,
		Topic:       URI(topic),
		Arguments:   args,
		ArgumentsKw: kwargs,
	}
	if err := s.send(pub); err != nil {
		if acknowledge {
			s.mu.Lock()
			delete(s.reg.pendingPublish, id)
			s.mu.Unlock()
		}
		return nil, err
	}

	if !acknowledge {
		return nil, nil
	}

	msg, err := s.awaitAck(ctx, s.reg.pendingPublish, id, waiter)
	if err != nil {
		return nil, err
	}
	return msg.(*Published), nil
}
