package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wampclient "github.com/wamp-go/client"
)

func TestJSONRoundTrip(t *testing.T) {
	cases := []wampclient.Message{
		&wampclient.Hello{Realm: "some.realm", Details: map[string]interface{}{}},
		&wampclient.Welcome{ID: 9129137332, Details: map[string]interface{}{"authrole": "anonymous"}},
		&wampclient.Goodbye{Details: map[string]interface{}{}, Reason: wampclient.ErrCloseRealm},
		&wampclient.Publish{Request: 123, Options: map[string]interface{}{}, Topic: "some.valid.topic"},
		&wampclient.Event{Subscription: 1, Publication: 2, Details: map[string]interface{}{}, Arguments: []interface{}{"hello", "world"}},
	}

	var codec JSONCodec
	for _, in := range cases {
		data, err := codec.Marshal(in)
		require.NoError(t, err)

		out, err := codec.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, in.MessageType(), out.MessageType())
		assert.Equal(t, in, out)
	}
}

func TestJSONDeserializeHello(t *testing.T) {
	msg, err := (JSONCodec{}).Unmarshal([]byte(`[1,"some.realm",{}]`))
	require.NoError(t, err)
	hello, ok := msg.(*wampclient.Hello)
	require.True(t, ok)
	assert.Equal(t, wampclient.URI("some.realm"), hello.Realm)
}

func TestJSONOmitsEmptyTail(t *testing.T) {
	data, err := (JSONCodec{}).Marshal(&wampclient.Unsubscribed{Request: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `[35,7]`, string(data))
}

func TestMsgpackRoundTrip(t *testing.T) {
	var codec MsgpackCodec
	in := &wampclient.Call{
		Request:   42,
		Options:   map[string]interface{}{},
		Procedure: "com.example.add",
		Arguments: []interface{}{int64(1), int64(2)},
	}

	data, err := codec.Marshal(in)
	require.NoError(t, err)

	out, err := codec.Unmarshal(data)
	require.NoError(t, err)
	call, ok := out.(*wampclient.Call)
	require.True(t, ok)
	assert.Equal(t, in.Request, call.Request)
	assert.Equal(t, in.Procedure, call.Procedure)
}
