package cra

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeUnsaltedMatchesHMAC(t *testing.T) {
	a := New("password")
	sig, extra, err := a.Challenge(context.Background(), map[string]interface{}{
		"challenge": "some-challenge-string",
	})
	require.NoError(t, err)
	assert.Nil(t, extra)

	mac := hmac.New(sha256.New, []byte("password"))
	mac.Write([]byte("some-challenge-string"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	assert.Equal(t, want, sig)
}

func TestChallengeMissingChallengeErrors(t *testing.T) {
	a := New("password")
	_, _, err := a.Challenge(context.Background(), map[string]interface{}{})
	assert.Error(t, err)
}

func TestChallengeSaltedDerivesKey(t *testing.T) {
	a := New("password")
	sig, _, err := a.Challenge(context.Background(), map[string]interface{}{
		"challenge":  "some-challenge-string",
		"salt":       "saltysalt",
		"keylen":     float64(32),
		"iterations": float64(1000),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}
