package wampclient

import "sync/atomic"

// requestClass identifies one of the six independently-numbered
// request id spaces a session maintains. Keeping them separate, rather
// than sharing one counter, matches what routers in the wild expect
// to see.
type requestClass int

const (
	classCall requestClass = iota
	classPublish
	classSubscribe
	classUnsubscribe
	classRegister
	classUnregister
	numRequestClasses
)

// idAllocator hands out strictly increasing ids for each request
// class, starting at 1. It is safe for concurrent use.
type idAllocator struct {
	counters [numRequestClasses]uint64
}

// next atomically increments and returns the next id for class c.
func (a *idAllocator) next(c requestClass) ID {
	return ID(atomic.AddUint64(&a.counters[c], 1))
}
