package server

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/mordilloSan/go-logger/logger"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
	"github.com/jaytlang-hopkins/freefocus/ipc/transport"
	"github.com/jaytlang-hopkins/freefocus/ipc/wire"
)

const outboxCapacity = 256

var (
	metricCmdsDispatched = metrics.NewCounter("freefocus_server_commands_dispatched_total")
	metricHelpFallbacks  = metrics.NewCounter("freefocus_server_help_fallbacks_total")
	metricClientsServed  = metrics.NewCounter("freefocus_server_clients_served_total")
)

// Server accepts one front-end at a time and dispatches its commands.
//
// All methods except Respond must be called from the owning tick loop's
// goroutine. Respond may be called from anywhere.
type Server struct {
	config   common.ServerConfig
	codec    *wire.Codec
	registry *Registry

	// Exactly one of listener/conn is non-nil between ticks.
	listener *transport.Listener
	conn     *transport.Connection

	pending []*common.Command
	outbox  *xsync.MPMCQueueOf[*common.Message]
}

// NewServer creates a server for the given endpoint and wire format.
// No socket exists until the first Tick.
func NewServer(config common.ServerConfig, ser serializer.ISerializer) *Server {
	config.Normalize()
	logger.Infof("Created control server")
	logger.Infof("%s", config.String())
	return &Server{
		config:   config,
		codec:    wire.NewCodec(ser),
		registry: NewRegistry(),
		outbox:   xsync.NewMPMCQueueOf[*common.Message](outboxCapacity),
	}
}

// Register adds a command parser. Registration order is dispatch order.
func (s *Server) Register(p Parser) {
	s.registry.Add(p)
}

// Respond queues a response for the attached front-end. Safe to call
// from any goroutine; never blocks. If no front-end is attached by the
// time the tick loop drains the outbox, the response is dropped.
func (s *Server) Respond(succeeded bool, message string) {
	msg := common.NewResponseMessage(succeeded, message)
	if !s.outbox.TryEnqueue(msg) {
		logger.Warnf("Response outbox full, dropping response: %s", message)
	}
}

// Tick advances the lifecycle by one step: drain the outbox, keep the
// listener/connection invariant, read at most one chunk from the peer,
// and dispatch at most one queued command.
func (s *Server) Tick() error {
	s.drainOutbox()

	if s.conn == nil && s.listener == nil {
		l, err := transport.NewListener(s.config.Endpoint)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.config.Endpoint, err)
		}
		logger.Debugf("Listening on %s", s.config.Endpoint)
		s.listener = l
	}

	if s.listener != nil {
		if err := s.acceptStep(); err != nil {
			return err
		}
	}

	if s.conn != nil {
		s.connStep()
	}

	s.dispatchOne()
	return nil
}

// HasConnection reports whether a front-end is attached.
func (s *Server) HasConnection() bool { return s.conn != nil }

// HasListener reports whether the server is currently accepting.
func (s *Server) HasListener() bool { return s.listener != nil }

// QueuedCommands returns the number of commands awaiting dispatch.
func (s *Server) QueuedCommands() int { return len(s.pending) }

// PendingWrites returns the number of outbound frames not yet fully on
// the wire. Shutdown uses this to flush farewells before closing.
func (s *Server) PendingWrites() int {
	if s.conn == nil {
		return 0
	}
	return s.conn.QueuedFrames()
}

// Close tears down whichever socket currently exists.
func (s *Server) Close() {
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	s.dropConnection()
}

// ----- Internal Helpers -----

func (s *Server) drainOutbox() {
	for {
		msg, ok := s.outbox.TryDequeue()
		if !ok {
			return
		}
		if s.conn == nil {
			logger.Debugf("No front-end attached, dropping response")
			continue
		}
		if err := s.conn.Enqueue(msg); err != nil {
			logger.Errorf("Failed to encode response: %v", err)
		}
	}
}

// acceptStep promotes a waiting front-end into the live connection and
// closes the listener so further connects are refused outright.
func (s *Server) acceptStep() error {
	readable, err := s.listener.Readable()
	if err != nil {
		return fmt.Errorf("failed to poll listener: %w", err)
	}
	if !readable {
		return nil
	}

	sock, err := s.listener.Accept()
	if err != nil {
		return fmt.Errorf("failed to accept: %w", err)
	}
	if sock == nil {
		return nil
	}

	_ = s.listener.Close()
	s.listener = nil
	s.conn = transport.NewConnection(sock, s.codec, s.config.ReadChunkSize)
	metricClientsServed.Inc()
	logger.Infof("Front-end connected")
	return nil
}

// connStep services the live connection. Any connection error, the
// peer hanging up included, destroys the connection; the next Tick
// recreates the listener.
func (s *Server) connStep() {
	msgs, err := s.conn.Tick()
	for _, msg := range msgs {
		if msg.MsgType != common.MsgTCommand {
			logger.Warnf("Ignoring unexpected %v message from front-end", msg.MsgType)
			continue
		}
		s.pending = append(s.pending, msg.Command)
	}

	if err != nil {
		if err == transport.ErrPeerDisconnected {
			logger.Infof("Front-end disconnected")
		} else {
			logger.Errorf("Connection failed: %v", err)
		}
		s.dropConnection()
	}
}

// dispatchOne runs at most one queued command through the registry.
// Commands no parser claims get the help listing back, succeeding only
// when the front-end literally asked for help.
func (s *Server) dispatchOne() {
	if len(s.pending) == 0 {
		return
	}
	cmd := s.pending[0]
	s.pending = s.pending[1:]

	logger.Debugf("Dispatching command %q", cmd.Name)
	if s.registry.Dispatch(cmd) {
		metricCmdsDispatched.Inc()
		return
	}

	metricHelpFallbacks.Inc()
	s.Respond(cmd.Name == "help", s.registry.HelpListing())
}

func (s *Server) dropConnection() {
	if s.conn == nil {
		return
	}
	_ = s.conn.Close()
	s.conn = nil
	s.pending = nil
}
