package wampclient

// Registration is the live handle returned by Session.Register. Its
// invocation stream yields every INVOCATION for this registration id;
// each carries a response hook (Yield/Error) that routes the caller's
// reply back to the router.
type Registration struct {
	id          ID
	procedure   URI
	session     *Session
	queue       *unboundedQueue[*InvocationRequest]
	invocations chan *InvocationRequest
}

func newRegistration(session *Session, id ID, procedure URI) *Registration {
	reg := &Registration{
		id:          id,
		procedure:   procedure,
		session:     session,
		queue:       newUnboundedQueue[*InvocationRequest](),
		invocations: make(chan *InvocationRequest),
	}
	go reg.queue.forward(reg.invocations)
	return reg
}

// ID is the server-assigned registration id.
func (r *Registration) ID() ID { return r.id }

// Procedure is the URI this registration was created for.
func (r *Registration) Procedure() URI { return r.procedure }

// Invocations yields every INVOCATION delivered for this registration,
// in transport-receive order. The channel closes when the registration
// is removed or the session closes.
func (r *Registration) Invocations() <-chan *InvocationRequest { return r.invocations }

// Unregister removes this registration; equivalent to calling
// Session.Unregister(r.ID()).
func (r *Registration) Unregister() error {
	return r.session.Unregister(r.id)
}

// InvocationRequest is one INVOCATION delivered to a registered
// procedure, together with the hook used to answer it. Exactly one of
// Yield or Error must be called per InvocationRequest.
type InvocationRequest struct {
	Request      ID
	Registration ID
	Details      map[string]interface{}
	Arguments    []interface{}
	ArgumentsKw  map[string]interface{}

	session *Session
}

// Yield answers the invocation with a successful result.
func (inv *InvocationRequest) Yield(args []interface{}, kwargs map[string]interface{}) error {
	return inv.session.send(&Yield{
		Request:     inv.Request,
		Options:     map[string]interface{}{},
		Arguments:   args,
		ArgumentsKw: kwargs,
	})
}

// Error answers the invocation with a failure.
func (inv *InvocationRequest) Error(uri URI, args []interface{}, kwargs map[string]interface{}) error {
	return inv.session.send(&Error{
		RequestType: INVOCATION,
		Request:     inv.Request,
		Details:     map[string]interface{}{},
		Error:       uri,
		Arguments:   args,
		ArgumentsKw: kwargs,
	})
}
