package wampclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wampclient "github.com/wamp-go/client"
)

func TestCallProgressiveResultsStreamInOrder(t *testing.T) {
	session, router := establishedSession(t)

	done := make(chan *wampclient.CallHandle, 1)
	go func() {
		handle, err := session.Call(context.Background(), "p", nil, nil, map[string]interface{}{"receive_progress": true})
		require.NoError(t, err)
		done <- handle
	}()

	call := router.recv(time.Second).(*wampclient.Call)
	handle := <-done

	router.send(&wampclient.Result{Request: call.Request, Details: map[string]interface{}{"progress": true}, Arguments: []interface{}{1}})
	router.send(&wampclient.Result{Request: call.Request, Details: map[string]interface{}{"progress": true}, Arguments: []interface{}{2}})
	router.send(&wampclient.Result{Request: call.Request, Arguments: []interface{}{3}})

	var got []interface{}
	for event := range handle.Events() {
		require.NoError(t, event.Err)
		got = append(got, event.Result.Arguments[0])
	}
	assert.Equal(t, []interface{}{1, 2, 3}, got)
}

func TestCallCancelSendsCancelAndAwaitsTerminal(t *testing.T) {
	session, router := establishedSession(t)

	done := make(chan *wampclient.CallHandle, 1)
	go func() {
		handle, err := session.Call(context.Background(), "p", nil, nil, nil)
		require.NoError(t, err)
		done <- handle
	}()

	call := router.recv(time.Second).(*wampclient.Call)
	handle := <-done

	require.NoError(t, handle.Cancel("kill"))
	cancel := router.recv(time.Second).(*wampclient.Cancel)
	assert.Equal(t, call.Request, cancel.Request)
	assert.Equal(t, "kill", cancel.Options["mode"])

	select {
	case _, ok := <-handle.Events():
		if ok {
			t.Fatal("stream delivered an event before the router's terminal response")
		}
		t.Fatal("stream closed before the router's terminal response")
	case <-time.After(50 * time.Millisecond):
	}

	router.send(&wampclient.Result{Request: call.Request, Arguments: []interface{}{"done"}})
	event, ok := <-handle.Events()
	require.True(t, ok)
	require.NoError(t, event.Err)
	assert.Equal(t, "done", event.Result.Arguments[0])
}
