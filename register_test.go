package wampclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wampclient "github.com/wamp-go/client"
)

func TestRegisterInvokeYield(t *testing.T) {
	session, router := establishedSession(t)

	regDone := make(chan *wampclient.Registration, 1)
	go func() {
		reg, err := session.Register(context.Background(), "com.example.add", nil)
		require.NoError(t, err)
		regDone <- reg
	}()

	register := router.recv(time.Second).(*wampclient.Register)
	router.send(&wampclient.Registered{Request: register.Request, Registration: 5})
	reg := <-regDone

	router.send(&wampclient.Invocation{
		Request: 50, Registration: 5,
		Details: map[string]interface{}{}, Arguments: []interface{}{1, 2},
	})

	inv := <-reg.Invocations()
	require.NoError(t, inv.Yield([]interface{}{3}, nil))

	yield := router.recv(time.Second).(*wampclient.Yield)
	assert.Equal(t, wampclient.ID(50), yield.Request)
	assert.Equal(t, 3, yield.Arguments[0])
}

func TestInvocationForUnknownRegistrationErrors(t *testing.T) {
	_, router := establishedSession(t)

	router.send(&wampclient.Invocation{
		Request: 99, Registration: 404,
		Details: map[string]interface{}{},
	})

	errMsg := router.recv(time.Second).(*wampclient.Error)
	assert.Equal(t, wampclient.INVOCATION, errMsg.RequestType)
	assert.Equal(t, wampclient.ID(99), errMsg.Request)
	assert.Equal(t, wampclient.ErrNoSuchRegistration, errMsg.Error)
}
