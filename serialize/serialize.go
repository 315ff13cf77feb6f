// Package serialize converts wampclient.Message values to and from the
// wire: a JSON array or MessagePack array whose first element is the
// message type code, followed by the message's fields in protocol
// order. Messages that end in an Arguments/ArgumentsKw payload (ERROR,
// PUBLISH, EVENT, CALL, RESULT, INVOCATION, YIELD) have their trailing
// empty fields omitted; every other message carries all of its fields.
//
// The message set is fixed and small enough that an explicit per-type
// table reads more plainly than a generic reflective walk, so toWire
// and fromWire are plain type switches rather than driven off struct
// tags.
package serialize

import (
	"fmt"

	wampclient "github.com/wamp-go/client"
)

// Codec serializes and deserializes wampclient.Message values.
type Codec interface {
	Marshal(msg wampclient.Message) ([]byte, error)
	Unmarshal(data []byte) (wampclient.Message, error)
}

func asURI(v interface{}) wampclient.URI {
	s, _ := v.(string)
	return wampclient.URI(s)
}

func asID(v interface{}) wampclient.ID {
	switch n := v.(type) {
	case float64:
		return wampclient.ID(n)
	case uint64:
		return wampclient.ID(n)
	case int64:
		return wampclient.ID(n)
	case int:
		return wampclient.ID(n)
	default:
		return 0
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asDict(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return nil
}

func asList(v interface{}) []interface{} {
	if l, ok := v.([]interface{}); ok {
		return l
	}
	return nil
}

// toWire renders msg as [type, field...]. For the messages that end in
// an Arguments/ArgumentsKw payload it trims trailing fields that are
// nil, empty-dict, or empty-list; other messages keep every field.
func toWire(msg wampclient.Message) ([]interface{}, error) {
	switch m := msg.(type) {
	case *wampclient.Hello:
		return []interface{}{int(wampclient.HELLO), string(m.Realm), m.Details}, nil
	case *wampclient.Welcome:
		return []interface{}{int(wampclient.WELCOME), uint64(m.ID), m.Details}, nil
	case *wampclient.Abort:
		return []interface{}{int(wampclient.ABORT), m.Details, string(m.Reason)}, nil
	case *wampclient.Challenge:
		return []interface{}{int(wampclient.CHALLENGE), m.AuthMethod, m.Extra}, nil
	case *wampclient.Authenticate:
		return []interface{}{int(wampclient.AUTHENTICATE), m.Signature, m.Extra}, nil
	case *wampclient.Goodbye:
		return []interface{}{int(wampclient.GOODBYE), m.Details, string(m.Reason)}, nil
	case *wampclient.Error:
		return trimTail([]interface{}{
			int(wampclient.ERROR), int(m.RequestType), uint64(m.Request), m.Details, string(m.Error), m.Arguments, m.ArgumentsKw,
		}), nil
	case *wampclient.Publish:
		return trimTail([]interface{}{
			int(wampclient.PUBLISH), uint64(m.Request), m.Options, string(m.Topic), m.Arguments, m.ArgumentsKw,
		}), nil
	case *wampclient.Published:
		return []interface{}{int(wampclient.PUBLISHED), uint64(m.Request), uint64(m.Publication)}, nil
	case *wampclient.Subscribe:
		return []interface{}{int(wampclient.SUBSCRIBE), uint64(m.Request), m.Options, string(m.Topic)}, nil
	case *wampclient.Subscribed:
		return []interface{}{int(wampclient.SUBSCRIBED), uint64(m.Request), uint64(m.Subscription)}, nil
	case *wampclient.Unsubscribe:
		return []interface{}{int(wampclient.UNSUBSCRIBE), uint64(m.Request), uint64(m.Subscription)}, nil
	case *wampclient.Unsubscribed:
		return []interface{}{int(wampclient.UNSUBSCRIBED), uint64(m.Request)}, nil
	case *wampclient.Event:
		return trimTail([]interface{}{
			int(wampclient.EVENT), uint64(m.Subscription), uint64(m.Publication), m.Details, m.Arguments, m.ArgumentsKw,
		}), nil
	case *wampclient.Call:
		return trimTail([]interface{}{
			int(wampclient.CALL), uint64(m.Request), m.Options, string(m.Procedure), m.Arguments, m.ArgumentsKw,
		}), nil
	case *wampclient.Cancel:
		return []interface{}{int(wampclient.CANCEL), uint64(m.Request), m.Options}, nil
	case *wampclient.Result:
		return trimTail([]interface{}{
			int(wampclient.RESULT), uint64(m.Request), m.Details, m.Arguments, m.ArgumentsKw,
		}), nil
	case *wampclient.Register:
		return []interface{}{int(wampclient.REGISTER), uint64(m.Request), m.Options, string(m.Procedure)}, nil
	case *wampclient.Registered:
		return []interface{}{int(wampclient.REGISTERED), uint64(m.Request), uint64(m.Registration)}, nil
	case *wampclient.Unregister:
		return []interface{}{int(wampclient.UNREGISTER), uint64(m.Request), uint64(m.Registration)}, nil
	case *wampclient.Unregistered:
		return []interface{}{int(wampclient.UNREGISTERED), uint64(m.Request)}, nil
	case *wampclient.Invocation:
		return trimTail([]interface{}{
			int(wampclient.INVOCATION), uint64(m.Request), uint64(m.Registration), m.Details, m.Arguments, m.ArgumentsKw,
		}), nil
	case *wampclient.Yield:
		return trimTail([]interface{}{
			int(wampclient.YIELD), uint64(m.Request), m.Options, m.Arguments, m.ArgumentsKw,
		}), nil
	default:
		return nil, fmt.Errorf("serialize: unsupported message %T", msg)
	}
}

// trimTail drops trailing nil/empty-map/empty-slice elements so the
// wire form omits fields a router-side decoder would treat as absent.
func trimTail(wire []interface{}) []interface{} {
	last := len(wire) - 1
	for last > 0 && isEmptyTail(wire[last]) {
		last--
	}
	return wire[:last+1]
}

func isEmptyTail(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}

// fromWire reconstructs a Message from its decoded [type, field...]
// form. Missing trailing elements (trimmed on the wire) decode as
// their zero value.
func fromWire(arr []interface{}) (wampclient.Message, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("serialize: empty message")
	}
	mtRaw, ok := arr[0].(float64)
	if !ok {
		if i, ok := arr[0].(int64); ok {
			mtRaw = float64(i)
		} else {
			return nil, fmt.Errorf("serialize: message type not numeric: %v", arr[0])
		}
	}
	mt := wampclient.MessageType(int(mtRaw))
	at := func(i int) interface{} {
		if i < len(arr) {
			return arr[i]
		}
		return nil
	}

	switch mt {
	case wampclient.HELLO:
		return &wampclient.Hello{Realm: asURI(at(1)), Details: asDict(at(2))}, nil
	case wampclient.WELCOME:
		return &wampclient.Welcome{ID: asID(at(1)), Details: asDict(at(2))}, nil
	case wampclient.ABORT:
		return &wampclient.Abort{Details: asDict(at(1)), Reason: asURI(at(2))}, nil
	case wampclient.CHALLENGE:
		return &wampclient.Challenge{AuthMethod: asString(at(1)), Extra: asDict(at(2))}, nil
	case wampclient.AUTHENTICATE:
		return &wampclient.Authenticate{Signature: asString(at(1)), Extra: asDict(at(2))}, nil
	case wampclient.GOODBYE:
		return &wampclient.Goodbye{Details: asDict(at(1)), Reason: asURI(at(2))}, nil
	case wampclient.ERROR:
		return &wampclient.Error{
			RequestType: wampclient.MessageType(int(asID(at(1)))),
			Request:     asID(at(2)),
			Details:     asDict(at(3)),
			Error:       asURI(at(4)),
			Arguments:   asList(at(5)),
			ArgumentsKw: asDict(at(6)),
		}, nil
	case wampclient.PUBLISH:
		return &wampclient.Publish{
			Request: asID(at(1)), Options: asDict(at(2)), Topic: asURI(at(3)),
			Arguments: asList(at(4)), ArgumentsKw: asDict(at(5)),
		}, nil
	case wampclient.PUBLISHED:
		return &wampclient.Published{Request: asID(at(1)), Publication: asID(at(2))}, nil
	case wampclient.SUBSCRIBE:
		return &wampclient.Subscribe{Request: asID(at(1)), Options: asDict(at(2)), Topic: asURI(at(3))}, nil
	case wampclient.SUBSCRIBED:
		return &wampclient.Subscribed{Request: asID(at(1)), Subscription: asID(at(2))}, nil
	case wampclient.UNSUBSCRIBE:
		return &wampclient.Unsubscribe{Request: asID(at(1)), Subscription: asID(at(2))}, nil
	case wampclient.UNSUBSCRIBED:
		return &wampclient.Unsubscribed{Request: asID(at(1))}, nil
	case wampclient.EVENT:
		return &wampclient.Event{
			Subscription: asID(at(1)), Publication: asID(at(2)), Details: asDict(at(3)),
			Arguments: asList(at(4)), ArgumentsKw: asDict(at(5)),
		}, nil
	case wampclient.CALL:
		return &wampclient.Call{
			Request: asID(at(1)), Options: asDict(at(2)), Procedure: asURI(at(3)),
			Arguments: asList(at(4)), ArgumentsKw: asDict(at(5)),
		}, nil
	case wampclient.CANCEL:
		return &wampclient.Cancel{Request: asID(at(1)), Options: asDict(at(2))}, nil
	case wampclient.RESULT:
		return &wampclient.Result{
			Request: asID(at(1)), Details: asDict(at(2)),
			Arguments: asList(at(3)), ArgumentsKw: asDict(at(4)),
		}, nil
	case wampclient.REGISTER:
		return &wampclient.Register{Request: asID(at(1)), Options: asDict(at(2)), Procedure: asURI(at(3))}, nil
	case wampclient.REGISTERED:
		return &wampclient.Registered{Request: asID(at(1)), Registration: asID(at(2))}, nil
	case wampclient.UNREGISTER:
		return &wampclient.Unregister{Request: asID(at(1)), Registration: asID(at(2))}, nil
	case wampclient.UNREGISTERED:
		return &wampclient.Unregistered{Request: asID(at(1))}, nil
	case wampclient.INVOCATION:
		return &wampclient.Invocation{
			Request: asID(at(1)), Registration: asID(at(2)), Details: asDict(at(3)),
			Arguments: asList(at(4)), ArgumentsKw: asDict(at(5)),
		}, nil
	case wampclient.YIELD:
		return &wampclient.Yield{
			Request: asID(at(1)), Options: asDict(at(2)),
			Arguments: asList(at(3)), ArgumentsKw: asDict(at(4)),
		}, nil
	default:
		return nil, fmt.Errorf("serialize: unsupported message type %d", int(mt))
	}
}
