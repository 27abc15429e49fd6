package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The channel runs over a single well-known loopback endpoint shared by both
// roles; only one daemon instance may bind it at a time.
const (
	DefaultEndpoint = "127.0.0.1:55365"

	// DefaultReadChunkSize is the size of one receive attempt on a
	// readable connection.
	DefaultReadChunkSize = 16384

	// DefaultTickInterval paces the cooperative loops of both roles.
	DefaultTickInterval = 5 * time.Millisecond
)

// --------------------------------------------------------------------------
// Server (daemon role) configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the daemon side of
// the channel.
type ServerConfig struct {
	// Endpoint is the loopback address the listener binds to
	Endpoint string

	// ReadChunkSize caps the bytes pulled off the socket per readable tick
	ReadChunkSize int

	// TickInterval is the pacing of the daemon runloop
	TickInterval time.Duration

	// Logging configuration
	Verbose bool
}

// Normalize fills zero values with the package defaults.
func (c *ServerConfig) Normalize() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.ReadChunkSize <= 0 {
		c.ReadChunkSize = DefaultReadChunkSize
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("IPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Read Chunk", fmt.Sprintf("%d bytes", c.ReadChunkSize))
	addField("Tick Interval", c.TickInterval.String())

	addSection("Logging")
	addField("Verbose", strconv.FormatBool(c.Verbose))

	return sb.String()
}

// --------------------------------------------------------------------------
// Client (front-end role) configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for a front-end side of
// the channel.
type ClientConfig struct {
	// Endpoint is the loopback address to connect to
	Endpoint string

	// ReadChunkSize caps the bytes pulled off the socket per readable tick
	ReadChunkSize int

	// TickInterval is the pacing of the client tick loop
	TickInterval time.Duration

	// RetryOnRefused keeps the connector lifecycle re-attempting after a
	// refused connect instead of surfacing the error to the caller. The
	// one-shot front-ends leave this false and fail fast; a long-lived
	// embedder may set it and rely on the lifecycle invariant re-firing.
	RetryOnRefused bool
}

// Normalize fills zero values with the package defaults.
func (c *ClientConfig) Normalize() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.ReadChunkSize <= 0 {
		c.ReadChunkSize = DefaultReadChunkSize
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("IPC Client")
	addField("Endpoint", c.Endpoint)
	addField("Tick Interval", c.TickInterval.String())
	addField("Retry On Refused", strconv.FormatBool(c.RetryOnRefused))

	return sb.String()
}
