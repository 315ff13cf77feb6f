package wampclient

import "context"

// Subscribe sends SUBSCRIBE and, on SUBSCRIBED, returns a live handle
// whose event stream yields every EVENT matching its subscription id
// for as long as the subscription is alive.
func (s *Session) Subscribe(ctx context.Context, topic string, options map[string]interface{}) (*Subscription, error) {
	if err := s.requireEstablished(); err != nil {
		return nil, err
	}
	if options == nil {
		options = map[string]interface{}{}
	}

	id := s.ids.next(classSubscribe)
	s.mu.Lock()
	waiter := s.registerAck(s.reg.pendingSubscribe, id)
	s.mu.Unlock()

	sub := &Subscribe{Request: id, Options: options, Topic: URI(topic)}
	if err := s.send(sub); err != nil {
		s.mu.Lock()
		delete(s.reg.pendingSubscribe, id)
		s.mu.Unlock()
		return nil, err
	}

	msg, err := s.awaitAck(ctx, s.reg.pendingSubscribe, id, waiter)
	if err != nil {
		return nil, err
	}
	subscribed := msg.(*Subscribed)

	subscription := newSubscription(s, subscribed.Subscription, URI(topic))
	s.mu.Lock()
	s.reg.subscriptions[subscribed.Subscription] = subscription
	s.mu.Unlock()
	return subscription, nil
}

// Unsubscribe sends UNSUBSCRIBE and, on success, removes the
// subscription record; its event stream closes and any EVENT arriving
// for it afterward is dropped silently by the dispatcher.
func (s *Session) Unsubscribe(subscriptionID ID) error {
	return s.unsubscribe(context.Background(), subscriptionID)
}

// UnsubscribeContext is Unsubscribe with caller-supplied cancellation.
func (s *Session) UnsubscribeContext(ctx context.Context, subscriptionID ID) error {
	return s.unsubscribe(ctx, subscriptionID)
}

func (s *Session) unsubscribe(ctx context.Context, subscriptionID ID) error {
	if err := s.requireEstablished(); err != nil {
		return err
	}

	id := s.ids.next(classUnsubscribe)
	s.mu.Lock()
	waiter := s.registerAck(s.reg.pendingUnsubscribe, id)
	s.mu.Unlock()

	unsub := &Unsubscribe{Request: id, Subscription: subscriptionID}
	if err := s.send(unsub); err != nil {
		s.mu.Lock()
		delete(s.reg.pendingUnsubscribe, id)
		s.mu.Unlock()
		return err
	}

	_, err := s.awaitAck(ctx, s.reg.pendingUnsubscribe, id, waiter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	sub, ok := s.reg.subscriptions[subscriptionID]
	delete(s.reg.subscriptions, subscriptionID)
	s.mu.Unlock()
	if ok {
		sub.queue.closeQueue()
	}
	return nil
}
