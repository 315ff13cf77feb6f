package wampclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wampclient "github.com/wamp-go/client"
)

func TestSubscribeEventUnsubscribeDropsLateEvents(t *testing.T) {
	session, router := establishedSession(t)

	subDone := make(chan *wampclient.Subscription, 1)
	go func() {
		sub, err := session.Subscribe(context.Background(), "t", nil)
		require.NoError(t, err)
		subDone <- sub
	}()

	subscribe := router.recv(time.Second).(*wampclient.Subscribe)
	router.send(&wampclient.Subscribed{Request: subscribe.Request, Subscription: 9})
	sub := <-subDone
	assert.Equal(t, wampclient.ID(9), sub.ID())

	router.send(&wampclient.Event{
		Subscription: 9, Publication: 100,
		Details: map[string]interface{}{}, Arguments: []interface{}{"hi"},
	})
	event := <-sub.Events()
	assert.Equal(t, "hi", event.Arguments[0])

	unsubDone := make(chan error, 1)
	go func() { unsubDone <- session.Unsubscribe(sub.ID()) }()
	unsubscribe := router.recv(time.Second).(*wampclient.Unsubscribe)
	router.send(&wampclient.Unsubscribed{Request: unsubscribe.Request})
	require.NoError(t, <-unsubDone)

	router.send(&wampclient.Event{
		Subscription: 9, Publication: 101,
		Details: map[string]interface{}{}, Arguments: []interface{}{"late"},
	})

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("late event delivered to unsubscribed stream")
		}
	case <-time.After(50 * time.Millisecond):
	}
}
