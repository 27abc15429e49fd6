package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/mordilloSan/go-logger/logger"
	"golang.org/x/sys/unix"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
	"github.com/jaytlang-hopkins/freefocus/ipc/transport"
	"github.com/jaytlang-hopkins/freefocus/ipc/wire"
)

var (
	// ErrServiceUnavailable is returned when the daemon refuses the
	// connection and the client is not configured to retry.
	ErrServiceUnavailable = errors.New("service refused the connection")

	// ErrConnectionLost is returned when an established connection dies.
	ErrConnectionLost = errors.New("lost connection to the service")

	// ErrCallTimeout is returned by Call when no response arrives in time.
	ErrCallTimeout = errors.New("timed out waiting for a response")
)

// Client connects to the daemon and exchanges commands for responses.
// All methods must be called from a single goroutine.
type Client struct {
	config common.ClientConfig
	codec  *wire.Codec

	// At most one of pending/conn is non-nil between ticks.
	pending *transport.PendingConnection
	conn    *transport.Connection

	outbox []*common.Message  // commands buffered until the link is up
	inbox  []*common.Response // responses in arrival order
}

// NewClient creates a client for the given endpoint and wire format.
// No socket exists until the first Tick.
func NewClient(config common.ClientConfig, ser serializer.ISerializer) *Client {
	config.Normalize()
	logger.Debugf("Created control client")
	logger.Debugf("%s", config.String())
	return &Client{
		config: config,
		codec:  wire.NewCodec(ser),
	}
}

// Send queues a command. Allowed in any connection state; commands
// queued before the link is up are flushed once it is.
func (c *Client) Send(name string, arguments []string) {
	c.outbox = append(c.outbox, common.NewCommandMessage(name, arguments))
}

// NextResponse pops the oldest collected response, or nil if the inbox
// is empty.
func (c *Client) NextResponse() *common.Response {
	if len(c.inbox) == 0 {
		return nil
	}
	resp := c.inbox[0]
	c.inbox = c.inbox[1:]
	return resp
}

// IsConnected reports whether the link is established.
func (c *Client) IsConnected() bool { return c.conn != nil }

// HasPendingConnection reports whether a connect is in flight. Never
// true while IsConnected is.
func (c *Client) HasPendingConnection() bool { return c.pending != nil }

// Tick advances the connection lifecycle by one step and services the
// link if it is up. A dead established connection is fatal: the client
// does not reconnect on its own.
func (c *Client) Tick() error {
	if c.conn == nil {
		if err := c.connectStep(); err != nil {
			return err
		}
	}
	if c.conn == nil {
		return nil
	}

	for _, msg := range c.outbox {
		if err := c.conn.Enqueue(msg); err != nil {
			return fmt.Errorf("failed to encode command: %w", err)
		}
	}
	c.outbox = nil

	msgs, err := c.conn.Tick()
	for _, msg := range msgs {
		if msg.MsgType != common.MsgTResponse {
			logger.Warnf("Ignoring unexpected %v message from service", msg.MsgType)
			continue
		}
		c.inbox = append(c.inbox, msg.Response)
	}

	if err != nil {
		_ = c.conn.Close()
		c.conn = nil
		logger.Errorf("Connection to service failed: %v", err)
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return nil
}

// WaitConnected ticks until the link is established or the timeout
// elapses. A zero timeout waits forever.
func (c *Client) WaitConnected(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for !c.IsConnected() {
		if timeout > 0 && time.Now().After(deadline) {
			return ErrServiceUnavailable
		}
		if err := c.Tick(); err != nil {
			return err
		}
		time.Sleep(c.config.TickInterval)
	}
	return nil
}

// Call sends one command and ticks until its response arrives. A zero
// timeout waits forever, which long-running commands like a recording
// rely on. Responses already sitting in the inbox are consumed first,
// so interleaving Call with manual Send leads to crossed replies.
func (c *Client) Call(name string, arguments []string, timeout time.Duration) (*common.Response, error) {
	c.Send(name, arguments)

	deadline := time.Now().Add(timeout)
	for {
		if resp := c.NextResponse(); resp != nil {
			return resp, nil
		}
		if timeout > 0 && time.Now().After(deadline) {
			return nil, ErrCallTimeout
		}
		if err := c.Tick(); err != nil {
			return nil, err
		}
		time.Sleep(c.config.TickInterval)
	}
}

// Close tears down whichever socket currently exists.
func (c *Client) Close() {
	if c.pending != nil {
		_ = c.pending.Close()
		c.pending = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// ----- Internal Helpers -----

// connectStep starts a connect when none is in flight and promotes it
// once the kernel reports the socket writable. Refusals either retry
// silently or surface, depending on configuration.
func (c *Client) connectStep() error {
	if c.pending == nil {
		p, err := transport.NewPendingConnection(c.config.Endpoint)
		if err != nil {
			return c.handleRefusal(err)
		}
		c.pending = p
	}

	writable, err := c.pending.Writable()
	if err != nil {
		_ = c.pending.Close()
		c.pending = nil
		return fmt.Errorf("failed to poll pending connection: %w", err)
	}
	if !writable {
		return nil
	}

	sock, err := c.pending.Promote()
	c.pending = nil
	if err != nil {
		return c.handleRefusal(err)
	}

	c.conn = transport.NewConnection(sock, c.codec, c.config.ReadChunkSize)
	logger.Debugf("Connected to service at %s", c.config.Endpoint)
	return nil
}

func (c *Client) handleRefusal(err error) error {
	if !errors.Is(err, unix.ECONNREFUSED) {
		return fmt.Errorf("failed to connect to %s: %w", c.config.Endpoint, err)
	}
	if c.config.RetryOnRefused {
		logger.Debugf("Service not up yet at %s, will retry", c.config.Endpoint)
		return nil
	}
	return fmt.Errorf("%w at %s", ErrServiceUnavailable, c.config.Endpoint)
}
