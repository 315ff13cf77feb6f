// Command wampcall is a small CLI exercising the session's three
// interaction surfaces — call, publish, subscribe — against a WebSocket
// router, following wamp3router's daemon/command layout: a root Cobra
// command with one verb per subcommand.
package main

func main() {
	Execute()
}
