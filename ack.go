package wampclient

import "context"

// awaitAck blocks for the single-shot response registered under id in
// table, honoring ctx cancellation and session teardown. If ctx fires
// first, the waiter's slot is released so a late answer from the
// router is simply dropped rather than leaking the table entry.
func (s *Session) awaitAck(ctx context.Context, table map[ID]chan ackResult, id ID, waiter chan ackResult) (Message, error) {
	select {
	case res := <-waiter:
		return res.msg, res.err
	case <-ctx.Done():
		s.mu.Lock()
		delete(table, id)
		s.mu.Unlock()
		return nil, ctx.Err()
	case <-s.closed:
		return nil, &ErrSessionClosed{Cause: s.closeErr}
	}
}
