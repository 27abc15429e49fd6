package transport

import (
	"github.com/VictoriaMetrics/metrics"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/wire"
)

var (
	metricBytesRead     = metrics.NewCounter("freefocus_ipc_bytes_read_total")
	metricBytesWritten  = metrics.NewCounter("freefocus_ipc_bytes_written_total")
	metricFramesDecoded = metrics.NewCounter("freefocus_ipc_frames_decoded_total")
	metricFramesQueued  = metrics.NewCounter("freefocus_ipc_frames_queued_total")
	metricDisconnects   = metrics.NewCounter("freefocus_ipc_disconnects_total")
)

// Connection is an established, bidirectional, non-blocking socket paired
// with a growable inbound byte buffer and an ordered queue of encoded
// outbound frames. At most one frame's tail is ever in flight at the head
// of the queue; later frames stay untouched until the head drains.
//
// Exactly one Connection exists per process at a time. It is created on
// accept (server role) or on a promoted connect (client role), and
// destroyed when a zero-length read or send signals that the peer is gone.
type Connection struct {
	sock      ISocket
	codec     *wire.Codec
	inbound   []byte
	outbound  [][]byte
	readChunk int
}

// NewConnection wraps an established socket.
func NewConnection(sock ISocket, codec *wire.Codec, readChunk int) *Connection {
	if readChunk <= 0 {
		readChunk = common.DefaultReadChunkSize
	}
	return &Connection{
		sock:      sock,
		codec:     codec,
		readChunk: readChunk,
	}
}

// Enqueue encodes a message and appends the frame to the outbound queue.
// Allowed at any time; never blocks.
func (c *Connection) Enqueue(msg *common.Message) error {
	frame, err := c.codec.Encode(msg)
	if err != nil {
		return err
	}
	c.outbound = append(c.outbound, frame)
	metricFramesQueued.Inc()
	return nil
}

// QueuedFrames returns the number of frames still waiting to drain,
// counting a partially sent head as one.
func (c *Connection) QueuedFrames() int {
	return len(c.outbound)
}

// Tick performs at most one read pass and one write pass, gated on a
// zero-timeout readiness poll. Decoded messages are returned in arrival
// order; multiple complete frames may surface from a single read.
//
// Any returned error means the Connection is dead: ErrPeerDisconnected for
// zero-length I/O, otherwise a transport or frame error. The owning
// lifecycle destroys the Connection in every case.
func (c *Connection) Tick() ([]*common.Message, error) {
	readable, writable, err := c.sock.Poll(true, true, 0)
	if err != nil {
		return nil, err
	}

	var msgs []*common.Message
	if readable {
		msgs, err = c.readStep()
		if err != nil {
			return msgs, err
		}
	}
	if writable {
		if err := c.writeStep(); err != nil {
			return msgs, err
		}
	}
	return msgs, nil
}

// readStep performs one read and drains every complete frame out of the
// inbound buffer.
func (c *Connection) readStep() ([]*common.Message, error) {
	buf := make([]byte, c.readChunk)
	n, err := c.sock.Read(buf)
	if err == ErrNotReady {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		metricDisconnects.Inc()
		return nil, ErrPeerDisconnected
	}

	metricBytesRead.Add(n)
	c.inbound = append(c.inbound, buf[:n]...)

	var msgs []*common.Message
	for {
		msg, rest, err := c.codec.Decode(c.inbound)
		if err != nil {
			// A malformed frame poisons the byte stream; treat it
			// like a disconnect and let the lifecycle rebuild.
			return msgs, err
		}
		if msg == nil {
			break
		}
		c.inbound = rest
		msgs = append(msgs, msg)
		metricFramesDecoded.Inc()
	}
	return msgs, nil
}

// writeStep sends as much of the queue head as the transport accepts.
func (c *Connection) writeStep() error {
	if len(c.outbound) == 0 {
		return nil
	}

	head := c.outbound[0]
	n, err := c.sock.Write(head)
	if err == ErrNotReady {
		return nil
	}
	if err != nil {
		return err
	}
	if n == 0 {
		metricDisconnects.Inc()
		return ErrPeerDisconnected
	}

	metricBytesWritten.Add(n)
	if n < len(head) {
		c.outbound[0] = head[n:]
	} else {
		c.outbound = c.outbound[1:]
	}
	return nil
}

// Close releases the underlying socket.
func (c *Connection) Close() error {
	return c.sock.Close()
}
