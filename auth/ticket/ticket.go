// Package ticket implements the WAMP-Ticket client authmethod: the
// signature is simply a pre-shared secret, echoed back verbatim on
// CHALLENGE.
package ticket

import (
	"context"

	wampclient "github.com/wamp-go/client"
)

// Authenticator answers a "ticket" CHALLENGE with a fixed secret.
type Authenticator struct {
	ticket string
}

// New returns a ticket Authenticator that answers every CHALLENGE with
// ticket.
func New(ticket string) *Authenticator {
	return &Authenticator{ticket: ticket}
}

func (a *Authenticator) Name() string { return "ticket" }

func (a *Authenticator) Challenge(ctx context.Context, extra map[string]interface{}) (string, map[string]interface{}, error) {
	return a.ticket, nil, nil
}

var _ wampclient.Authenticator = (*Authenticator)(nil)
