// Package wampclient implements the session layer of a WAMP (Web
// Application Messaging Protocol) client: the opening handshake
// (HELLO/CHALLENGE/AUTHENTICATE/WELCOME/ABORT) and, once established,
// the request/response correlation and stream fan-out that multiplex
// CALL, PUBLISH/SUBSCRIBE and REGISTER/UNREGISTER over one
// bidirectional message stream.
//
// The byte transport (see Transport), wire serialization (see
// subpackage serialize) and authentication cryptography (see
// Authenticator and its subpackages auth/ticket, auth/cra) are
// external collaborators the session is built on, not implemented
// here.
package wampclient
