package websocket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wampclient "github.com/wamp-go/client"
	"github.com/wamp-go/client/serialize"
	"github.com/wamp-go/client/transport/websocket"
)

// newEchoServer relays every frame it reads straight back to the
// client, enough to exercise the Transport's framing without a real
// router.
func newEchoServer(t *testing.T) *httptest.Server {
	upgrader := gorilla.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		for {
			mt, b, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, b); err != nil {
				return
			}
		}
	}))
}

func TestWebsocketTransportEchoRoundTrip(t *testing.T) {
	server := newEchoServer(t)
	defer server.Close()

	url := "ws" + server.URL[len("http"):]
	transport := websocket.New(websocket.Options{URL: url, Codec: serialize.JSONCodec{}})
	require.NoError(t, transport.Open(context.Background()))
	defer transport.Close()

	require.NoError(t, transport.Send(&wampclient.Hello{Realm: "realm1", Details: map[string]interface{}{}}))

	select {
	case msg := <-transport.Receive():
		hello, ok := msg.(*wampclient.Hello)
		require.True(t, ok)
		assert.Equal(t, wampclient.URI("realm1"), hello.Realm)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for echoed message")
	}
	assert.True(t, transport.IsOpen())
}
