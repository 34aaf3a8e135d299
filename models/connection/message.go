package connection

import "encoding/json"

type NoPayload bool

type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// DecodeMessage reads the payload of an incoming message into T.
func DecodeMessage[T any](payload []byte) (Message[T], error) {
	var msg Message[T]
	err := json.Unmarshal(payload, &msg)
	return msg, err
}
