package wampclient

import "regexp"

// Message is a generic container for a WAMP message.
type Message interface {
	MessageType() MessageType
}

// MessageType is the WAMP integer message type code.
type MessageType int

func (mt MessageType) String() string {
	switch mt {
	case HELLO:
		return "HELLO"
	case WELCOME:
		return "WELCOME"
	case ABORT:
		return "ABORT"
	case CHALLENGE:
		return "CHALLENGE"
	case AUTHENTICATE:
		return "AUTHENTICATE"
	case GOODBYE:
		return "GOODBYE"
	case ERROR:
		return "ERROR"
	case PUBLISH:
		return "PUBLISH"
	case PUBLISHED:
		return "PUBLISHED"
	case SUBSCRIBE:
		return "SUBSCRIBE"
	case SUBSCRIBED:
		return "SUBSCRIBED"
	case UNSUBSCRIBE:
		return "UNSUBSCRIBE"
	case UNSUBSCRIBED:
		return "UNSUBSCRIBED"
	case EVENT:
		return "EVENT"
	case CALL:
		return "CALL"
	case CANCEL:
		return "CANCEL"
	case RESULT:
		return "RESULT"
	case REGISTER:
		return "REGISTER"
	case REGISTERED:
		return "REGISTERED"
	case UNREGISTER:
		return "UNREGISTER"
	case UNREGISTERED:
		return "UNREGISTERED"
	case INVOCATION:
		return "INVOCATION"
	case YIELD:
		return "YIELD"
	default:
		return "UNKNOWN"
	}
}

// WAMP message type codes, per the basic profile.
const (
	HELLO        MessageType = 1
	WELCOME      MessageType = 2
	ABORT        MessageType = 3
	CHALLENGE    MessageType = 4
	AUTHENTICATE MessageType = 5
	GOODBYE      MessageType = 6
	ERROR        MessageType = 8

	PUBLISH   MessageType = 16
	PUBLISHED MessageType = 17

	SUBSCRIBE    MessageType = 32
	SUBSCRIBED   MessageType = 33
	UNSUBSCRIBE  MessageType = 34
	UNSUBSCRIBED MessageType = 35
	EVENT        MessageType = 36

	CALL   MessageType = 48
	CANCEL MessageType = 49
	RESULT MessageType = 50

	REGISTER     MessageType = 64
	REGISTERED   MessageType = 65
	UNREGISTER   MessageType = 66
	UNREGISTERED MessageType = 67
	INVOCATION   MessageType = 68
	YIELD        MessageType = 70
)

// URI is a dot-separated WAMP identifier, e.g. "com.example.procedure".
type URI string

// uriPattern matches one or more dot-separated segments, each free of
// whitespace, '#', and '.'; it rejects the empty string along with
// leading, trailing, or doubled dots.
var uriPattern = regexp.MustCompile(`^[^\s#.]+(\.[^\s#.]+)*$`)

// Valid reports whether u is a well-formed dot-separated WAMP URI.
// Connect checks it on the realm, so a malformed realm is rejected
// synchronously instead of surfacing later as a router-side error.
// Topic and procedure names are not checked.
func (u URI) Valid() bool {
	return uriPattern.MatchString(string(u))
}

// ID is a WAMP request, session, subscription or registration identifier.
type ID uint64

// [HELLO, Realm|uri, Details|dict]
type Hello struct {
	Realm   URI
	Details map[string]interface{}
}

func (msg *Hello) MessageType() MessageType { return HELLO }

// [WELCOME, Session|id, Details|dict]
type Welcome struct {
	ID      ID
	Details map[string]interface{}
}

func (msg *Welcome) MessageType() MessageType { return WELCOME }

// [ABORT, Details|dict, Reason|uri]
type Abort struct {
	Details map[string]interface{}
	Reason  URI
}

func (msg *Abort) MessageType() MessageType { return ABORT }

// [CHALLENGE, AuthMethod|string, Extra|dict]
type Challenge struct {
	AuthMethod string
	Extra      map[string]interface{}
}

func (msg *Challenge) MessageType() MessageType { return CHALLENGE }

// [AUTHENTICATE, Signature|string, Extra|dict]
type Authenticate struct {
	Signature string
	Extra     map[string]interface{}
}

func (msg *Authenticate) MessageType() MessageType { return AUTHENTICATE }

// [GOODBYE, Details|dict, Reason|uri]
type Goodbye struct {
	Details map[string]interface{}
	Reason  URI
}

func (msg *Goodbye) MessageType() MessageType { return GOODBYE }

// [ERROR, REQUEST.Type|int, REQUEST.Request|id, Details|dict, Error|uri, Arguments|list, ArgumentsKw|dict]
type Error struct {
	RequestType MessageType
	Request     ID
	Details     map[string]interface{}
	Error       URI
	Arguments   []interface{}
	ArgumentsKw map[string]interface{}
}

func (msg *Error) MessageType() MessageType { return ERROR }

// [PUBLISH, Request|id, Options|dict, Topic|uri, Arguments|list, ArgumentsKw|dict]
type Publish struct {
	Request     ID
	Options     map[string]interface{}
	Topic       URI
	Arguments   []interface{}
	ArgumentsKw map[string]interface{}
}

func (msg *Publish) MessageType() MessageType { return PUBLISH }

// [PUBLISHED, PUBLISH.Request|id, Publication|id]
type Published struct {
	Request     ID
	Publication ID
}

func (msg *Published) MessageType() MessageType { return PUBLISHED }

// [SUBSCRIBE, Request|id, Options|dict, Topic|uri]
type Subscribe struct {
	Request ID
	Options map[string]interface{}
	Topic   URI
}

func (msg *Subscribe) MessageType() MessageType { return SUBSCRIBE }

// [SUBSCRIBED, SUBSCRIBE.Request|id, Subscription|id]
type Subscribed struct {
	Request      ID
	Subscription ID
}

func (msg *Subscribed) MessageType() MessageType { return SUBSCRIBED }

// [UNSUBSCRIBE, Request|id, SUBSCRIBED.Subscription|id]
type Unsubscribe struct {
	Request      ID
	Subscription ID
}

func (msg *Unsubscribe) MessageType() MessageType { return UNSUBSCRIBE }

// [UNSUBSCRIBED, UNSUBSCRIBE.Request|id]
type Unsubscribed struct {
	Request ID
}

func (msg *Unsubscribed) MessageType() MessageType { return UNSUBSCRIBED }

// [EVENT, SUBSCRIBED.Subscription|id, PUBLISHED.Publication|id, Details|dict, Arguments|list, ArgumentsKw|dict]
type Event struct {
	Subscription ID
	Publication  ID
	Details      map[string]interface{}
	Arguments    []interface{}
	ArgumentsKw  map[string]interface{}
}

func (msg *Event) MessageType() MessageType { return EVENT }

// [CALL, Request|id, Options|dict, Procedure|uri, Arguments|list, ArgumentsKw|dict]
type Call struct {
	Request     ID
	Options     map[string]interface{}
	Procedure   URI
	Arguments   []interface{}
	ArgumentsKw map[string]interface{}
}

func (msg *Call) MessageType() MessageType { return CALL }

// [CANCEL, CALL.Request|id, Options|dict]
type Cancel struct {
	Request ID
	Options map[string]interface{}
}

func (msg *Cancel) MessageType() MessageType { return CANCEL }

// [RESULT, CALL.Request|id, Details|dict, Arguments|list, ArgumentsKw|dict]
//
// Details["progress"] == true marks a progressive (non-terminal) result.
type Result struct {
	Request     ID
	Details     map[string]interface{}
	Arguments   []interface{}
	ArgumentsKw map[string]interface{}
}

func (msg *Result) MessageType() MessageType { return RESULT }

// Progress reports whether this Result is a progressive call result,
// i.e. not the terminal Result for its CALL.
func (msg *Result) Progress() bool {
	if msg.Details == nil {
		return false
	}
	p, _ := msg.Details["progress"].(bool)
	return p
}

// [REGISTER, Request|id, Options|dict, Procedure|uri]
type Register struct {
	Request   ID
	Options   map[string]interface{}
	Procedure URI
}

func (msg *Register) MessageType() MessageType { return REGISTER }

// [REGISTERED, REGISTER.Request|id, Registration|id]
type Registered struct {
	Request      ID
	Registration ID
}

func (msg *Registered) MessageType() MessageType { return REGISTERED }

// [UNREGISTER, Request|id, REGISTERED.Registration|id]
type Unregister struct {
	Request      ID
	Registration ID
}

func (msg *Unregister) MessageType() MessageType { return UNREGISTER }

// [UNREGISTERED, UNREGISTER.Request|id]
type Unregistered struct {
	Request ID
}

func (msg *Unregistered) MessageType() MessageType { return UNREGISTERED }

// [INVOCATION, Request|id, REGISTERED.Registration|id, Details|dict, Arguments|list, ArgumentsKw|dict]
type Invocation struct {
	Request      ID
	Registration ID
	Details      map[string]interface{}
	Arguments    []interface{}
	ArgumentsKw  map[string]interface{}
}

func (msg *Invocation) MessageType() MessageType { return INVOCATION }

// [YIELD, INVOCATION.Request|id, Options|dict, Arguments|list, ArgumentsKw|dict]
type Yield struct {
	Request     ID
	Options     map[string]interface{}
	Arguments   []interface{}
	ArgumentsKw map[string]interface{}
}

func (msg *Yield) MessageType() MessageType { return YIELD }
