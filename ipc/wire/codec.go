// Package wire implements the framing codec of the control channel: each
// serialized Message travels as a 4-byte big-endian unsigned length followed
// by the payload. The codec is pure: it never blocks and never performs
// I/O; partial frames are left untouched for the caller to retry once more
// bytes have arrived.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
)

// LengthSize is the size of the frame length prefix in bytes.
const LengthSize = 4

// Codec frames messages with a length prefix around a pluggable payload
// serializer. Stateless and safe for concurrent use.
type Codec struct {
	ser serializer.ISerializer
}

// NewCodec creates a codec around the given payload serializer.
func NewCodec(ser serializer.ISerializer) *Codec {
	return &Codec{ser: ser}
}

// Encode serializes a message and prefixes it with the payload length.
// The result is a single complete frame: prefix || payload.
func (c *Codec) Encode(msg *common.Message) ([]byte, error) {
	if err := msg.Check(); err != nil {
		return nil, err
	}

	payload, err := c.ser.Serialize(*msg)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, LengthSize+len(payload))
	binary.BigEndian.PutUint32(frame[:LengthSize], uint32(len(payload)))
	copy(frame[LengthSize:], payload)
	return frame, nil
}

// Decode attempts to split one complete frame off the front of buf.
//
// If buf holds fewer than LengthSize bytes, or fewer payload bytes than the
// prefix declares, it returns (nil, buf, nil); the caller accumulates more
// data and retries. Otherwise the payload is deserialized and the bytes
// after the consumed frame are returned as the remainder.
//
// A complete frame whose payload does not parse as a valid tagged message is
// a frame error: Decode returns it loudly rather than dropping data.
func (c *Codec) Decode(buf []byte) (*common.Message, []byte, error) {
	if len(buf) < LengthSize {
		return nil, buf, nil
	}

	length := int(binary.BigEndian.Uint32(buf[:LengthSize]))
	if len(buf)-LengthSize < length {
		return nil, buf, nil
	}

	var msg common.Message
	if err := c.ser.Deserialize(buf[LengthSize:LengthSize+length], &msg); err != nil {
		return nil, buf, fmt.Errorf("malformed frame payload: %w", err)
	}
	if err := msg.Check(); err != nil {
		return nil, buf, fmt.Errorf("malformed frame payload: %w", err)
	}

	return &msg, buf[LengthSize+length:], nil
}
