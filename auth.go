package wampclient

import "context"

// Authenticator produces an AUTHENTICATE response for one named WAMP
// auth method. Cryptographic work — ticket comparison, CRA/HMAC,
// SCRAM/PBKDF2 — lives in the implementation, not here; see the
// auth/ticket and auth/cra subpackages for concrete ones.
type Authenticator interface {
	// Name is the authmethod this authenticator answers for, matched
	// against the name offered in HELLO and the one named in CHALLENGE.
	Name() string

	// Challenge is invoked with the CHALLENGE message's Extra payload
	// and returns the Signature and Extra to send back in AUTHENTICATE.
	// It may perform arbitrary asynchronous work (e.g. PBKDF2) and is
	// awaited; ctx is canceled if the connect attempt is abandoned.
	Challenge(ctx context.Context, extra map[string]interface{}) (signature string, authExtra map[string]interface{}, err error)
}

func findAuthenticator(authmethod string, offered []Authenticator) Authenticator {
	for _, a := range offered {
		if a.Name() == authmethod {
			return a
		}
	}
	return nil
}

func authmethodNames(offered []Authenticator) []string {
	names := make([]string, len(offered))
	for i, a := range offered {
		names[i] = a.Name()
	}
	return names
}
