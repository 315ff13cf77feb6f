package wampclient

import "testing"

func TestMessageTypeCodesMatchBasicProfile(t *testing.T) {
	cases := map[MessageType]int{
		HELLO: 1, WELCOME: 2, ABORT: 3, CHALLENGE: 4, AUTHENTICATE: 5, GOODBYE: 6, ERROR: 8,
		PUBLISH: 16, PUBLISHED: 17,
		SUBSCRIBE: 32, SUBSCRIBED: 33, UNSUBSCRIBE: 34, UNSUBSCRIBED: 35, EVENT: 36,
		CALL: 48, CANCEL: 49, RESULT: 50,
		REGISTER: 64, REGISTERED: 65, UNREGISTER: 66, UNREGISTERED: 67, INVOCATION: 68, YIELD: 70,
	}
	for mt, want := range cases {
		if int(mt) != want {
			t.Fatalf("%s: got code %d, want %d", mt, int(mt), want)
		}
	}
}

func TestResultProgress(t *testing.T) {
	r := &Result{Details: map[string]interface{}{"progress": true}}
	if !r.Progress() {
		t.Fatal("expected Progress() to be true")
	}
	terminal := &Result{Details: map[string]interface{}{}}
	if terminal.Progress() {
		t.Fatal("expected Progress() to be false for a terminal result")
	}
	noDetails := &Result{}
	if noDetails.Progress() {
		t.Fatal("expected Progress() to be false when Details is nil")
	}
}
