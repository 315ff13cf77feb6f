package serialize

import (
	"fmt"
	"reflect"

	"github.com/ugorji/go/codec"

	wampclient "github.com/wamp-go/client"
)

var msgpackHandle = newMsgpackHandle()

func newMsgpackHandle() *codec.MsgpackHandle {
	h := new(codec.MsgpackHandle)
	// Decode WAMP dicts as map[string]interface{}, matching fromWire's
	// asDict/asList type assertions instead of ugorji's default
	// map[interface{}]interface{}.
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	// Decode msgpack raw/str types as string, matching fromWire's
	// asURI/asString type assertions instead of ugorji's default []byte.
	h.RawToString = true
	return h
}

// MsgpackCodec implements Codec over the binary subprotocol.
type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(msg wampclient.Message) ([]byte, error) {
	wire, err := toWire(msg)
	if err != nil {
		return nil, err
	}
	var b []byte
	if err := codec.NewEncoderBytes(&b, msgpackHandle).Encode(wire); err != nil {
		return nil, fmt.Errorf("serialize: encoding msgpack: %w", err)
	}
	return b, nil
}

func (MsgpackCodec) Unmarshal(data []byte) (wampclient.Message, error) {
	var arr []interface{}
	if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(&arr); err != nil {
		return nil, fmt.Errorf("serialize: decoding msgpack: %w", err)
	}
	return fromWire(arr)
}
