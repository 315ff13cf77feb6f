package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChallengeEchoesTicket(t *testing.T) {
	a := New("s3cret")
	sig, extra, err := a.Challenge(context.Background(), map[string]interface{}{})
	assert.NoError(t, err)
	assert.Equal(t, "s3cret", sig)
	assert.Nil(t, extra)
	assert.Equal(t, "ticket", a.Name())
}
