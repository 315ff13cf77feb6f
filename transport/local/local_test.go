package local_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wampclient "github.com/wamp-go/client"
	"github.com/wamp-go/client/transport/local"
)

func TestPairDeliversMessagesBothWays(t *testing.T) {
	a, b := local.NewPair()
	require.NoError(t, a.Open(context.Background()))
	require.NoError(t, b.Open(context.Background()))

	require.NoError(t, a.Send(&wampclient.Hello{Realm: "realm1", Details: map[string]interface{}{}}))
	select {
	case msg := <-b.Receive():
		hello, ok := msg.(*wampclient.Hello)
		require.True(t, ok)
		assert.Equal(t, wampclient.URI("realm1"), hello.Realm)
	case <-time.After(time.Second):
		t.Fatal("b did not receive a's message")
	}

	require.NoError(t, b.Send(&wampclient.Welcome{ID: 1, Details: map[string]interface{}{}}))
	select {
	case msg := <-a.Receive():
		_, ok := msg.(*wampclient.Welcome)
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("a did not receive b's message")
	}
}

func TestCloseDisconnectsBothSides(t *testing.T) {
	a, b := local.NewPair()
	require.NoError(t, a.Open(context.Background()))
	require.NoError(t, b.Open(context.Background()))

	require.NoError(t, a.Close())
	assert.False(t, a.IsOpen())

	select {
	case _, ok := <-a.Receive():
		assert.False(t, ok, "a's own receive channel should close once a closes")
	case <-time.After(time.Second):
		t.Fatal("a's receive channel never closed after a.Close()")
	}

	_, ok := <-b.Receive()
	assert.False(t, ok, "b's receive channel should close once a closes")

	err := a.Send(&wampclient.Goodbye{Details: map[string]interface{}{}, Reason: wampclient.ErrCloseRealm})
	assert.ErrorIs(t, err, wampclient.ErrTransportClosed)
}
