package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Command is a request issued by a front-end: a command name plus an ordered
// list of string arguments. Immutable once constructed.
type Command struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments"`
}

// Response is the daemon's answer to a Command. Message may be empty when
// there is nothing to display.
type Response struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

// Message is the tagged union carried on the wire. Exactly one of Command
// and Response is set, selected by MsgType. A single decoder therefore
// works for both roles.
type Message struct {
	MsgType  MessageType
	Command  *Command
	Response *Response
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewCommandMessage creates a new Command message
func NewCommandMessage(name string, arguments []string) *Message {
	return &Message{
		MsgType: MsgTCommand,
		Command: &Command{Name: name, Arguments: arguments},
	}
}

// NewResponseMessage creates a new Response message
func NewResponseMessage(succeeded bool, text string) *Message {
	return &Message{
		MsgType:  MsgTResponse,
		Response: &Response{Succeeded: succeeded, Message: text},
	}
}

// Check validates that the tag matches the populated side of the union.
// Decoders call this after structural parsing so that a frame carrying an
// inconsistent message fails loudly instead of passing through half-empty.
func (m *Message) Check() error {
	switch m.MsgType {
	case MsgTCommand:
		if m.Command == nil {
			return fmt.Errorf("message tagged %s has no command body", m.MsgType)
		}
	case MsgTResponse:
		if m.Response == nil {
			return fmt.Errorf("message tagged %s has no response body", m.MsgType)
		}
	default:
		return fmt.Errorf("unknown message type tag %d", uint8(m.MsgType))
	}
	return nil
}

// --------------------------------------------------------------------------
// JSON wire shape
// --------------------------------------------------------------------------

// The JSON encoding is flat: the discriminant travels as a "type" field next
// to the payload fields, e.g.
//
//	{"type":"Command","name":"show","arguments":["okn"]}
//	{"type":"Response","succeeded":true,"message":""}

type taggedCommand struct {
	Type      MessageType `json:"type"`
	Name      string      `json:"name"`
	Arguments []string    `json:"arguments"`
}

type taggedResponse struct {
	Type      MessageType `json:"type"`
	Succeeded bool        `json:"succeeded"`
	Message   string      `json:"message"`
}

// MarshalJSON implements the json.Marshaler interface for Message,
// dispatching on the tag to produce the flat tagged object.
func (m Message) MarshalJSON() ([]byte, error) {
	if err := m.Check(); err != nil {
		return nil, err
	}
	switch m.MsgType {
	case MsgTCommand:
		return json.Marshal(taggedCommand{m.MsgType, m.Command.Name, m.Command.Arguments})
	default:
		return json.Marshal(taggedResponse{m.MsgType, m.Response.Succeeded, m.Response.Message})
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface for Message. The
// discriminant is parsed first; only then is the payload parsed structurally.
func (m *Message) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	switch tag.Type {
	case MsgTCommand:
		var c taggedCommand
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		m.MsgType = MsgTCommand
		m.Command = &Command{Name: c.Name, Arguments: c.Arguments}
		m.Response = nil
	case MsgTResponse:
		var r taggedResponse
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		m.MsgType = MsgTResponse
		m.Response = &Response{Succeeded: r.Succeeded, Message: r.Message}
		m.Command = nil
	default:
		return fmt.Errorf("unknown message type tag %d", uint8(tag.Type))
	}
	return nil
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType is the discriminant of the Message union.
type MessageType uint8

const (
	MsgTUnknown MessageType = iota
	MsgTCommand             // Front-end request: name + arguments
	MsgTResponse            // Daemon answer: succeeded + message
)

// String returns the string representation of a MessageType. These values
// are the tag strings carried on the wire.
func (t MessageType) String() string {
	switch t {
	case MsgTCommand:
		return "Command"
	case MsgTResponse:
		return "Response"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "Command":
		*t = MsgTCommand
	case "Response":
		*t = MsgTResponse
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}
	return nil
}
