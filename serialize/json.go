package serialize

import (
	"encoding/json"
	"fmt"

	wampclient "github.com/wamp-go/client"
)

// JSONCodec implements Codec over the text subprotocol.
type JSONCodec struct{}

func (JSONCodec) Marshal(msg wampclient.Message) ([]byte, error) {
	wire, err := toWire(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

func (JSONCodec) Unmarshal(data []byte) (wampclient.Message, error) {
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("serialize: decoding json: %w", err)
	}
	return fromWire(arr)
}
