package wampclient

// Subscription is the live handle returned by Session.Subscribe. Its
// event stream yields every EVENT matching its subscription id for as
// long as the subscription is alive; once Unsubscribe succeeds (or the
// session closes), the stream closes and no further events arrive —
// late EVENTs for a removed subscription id are dropped silently by
// the dispatcher.
//
// A Subscription only observes its session; it does not own it, so
// closing the session closes the subscription's stream without the
// reverse ever being true.
type Subscription struct {
	id      ID
	topic   URI
	session *Session
	queue   *unboundedQueue[*Event]
	events  chan *Event
}

func newSubscription(session *Session, id ID, topic URI) *Subscription {
	sub := &Subscription{
		id:      id,
		topic:   topic,
		session: session,
		queue:   newUnboundedQueue[*Event](),
		events:  make(chan *Event),
	}
	go sub.queue.forward(sub.events)
	return sub
}

// ID is the server-assigned subscription id.
func (s *Subscription) ID() ID { return s.id }

// Topic is the URI this subscription was created for.
func (s *Subscription) Topic() URI { return s.topic }

// Events yields every EVENT delivered for this subscription, in
// transport-receive order. The channel closes when the subscription
// is removed or the session closes.
func (s *Subscription) Events() <-chan *Event { return s.events }

// Unsubscribe removes this subscription; it is equivalent to calling
// Session.Unsubscribe(s.ID()).
func (s *Subscription) Unsubscribe() error {
	return s.session.Unsubscribe(s.id)
}
