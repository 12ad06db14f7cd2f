package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec carries plain Go structs over Connect's "json" codec slot, in
// place of the protobuf JSON codec registered by default.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Codec returns the codec shared by the handlers and the client.
func Codec() connect.Codec { return jsonCodec{} }
