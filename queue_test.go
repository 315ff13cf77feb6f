package wampclient

import (
	"testing"
	"time"
)

func TestUnboundedQueuePreservesPushOrder(t *testing.T) {
	q := newUnboundedQueue[int]()
	out := make(chan int)
	go q.forward(out)

	for i := 0; i < 5; i++ {
		q.push(i)
	}
	q.closeQueue()

	var got []int
	for v := range out {
		got = append(got, v)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: got %d", i, v)
		}
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
}

func TestUnboundedQueueSlowConsumerDoesNotBlockPush(t *testing.T) {
	q := newUnboundedQueue[int]()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			q.push(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push blocked on an undrained queue")
	}
	q.closeQueue()
}
